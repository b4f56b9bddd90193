// roster.go - Staff roster: a named-entity list with add/remove.
// The roster is additively independent of every other component; nothing in
// orders or sales references a staff id.
package pos

// Roster holds the staff list in insertion order.
type Roster struct {
	members []Staff
	nextID  int64
}

// NewRoster rebuilds a roster from persisted members, seeding the id counter
// past the highest id seen.
func NewRoster(members []Staff) *Roster {
	r := &Roster{members: members, nextID: 1}
	for _, m := range members {
		if m.ID >= r.nextID {
			r.nextID = m.ID + 1
		}
	}
	return r
}

// Add appends a staff member with the next counter id.
func (r *Roster) Add(name, role string) (Staff, error) {
	if name == "" {
		return Staff{}, &ValidationError{Field: "name", Reason: "must not be empty"}
	}
	member := Staff{ID: r.nextID, Name: name, Role: role}
	r.nextID++
	r.members = append(r.members, member)
	return member, nil
}

// Remove deletes the member with the given id. Unknown ids are a no-op.
func (r *Roster) Remove(id int64) {
	for i, m := range r.members {
		if m.ID == id {
			r.members = append(r.members[:i], r.members[i+1:]...)
			return
		}
	}
}

// List returns a copy of the roster in insertion order.
func (r *Roster) List() []Staff {
	dup := make([]Staff, len(r.members))
	copy(dup, r.members)
	return dup
}
