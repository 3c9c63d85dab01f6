package domain

// Criteria is the current filter configuration.
//
// The zero value selects every product. Criteria is a value: every method
// returns a modified copy and never touches the receiver.
type Criteria struct {
	UserID *int
	Query  string
}

func (c Criteria) WithUser(id int) Criteria {
	c.UserID = &id
	return c
}

// AllUsers drops the user selection and keeps the query.
func (c Criteria) AllUsers() Criteria {
	c.UserID = nil
	return c
}

func (c Criteria) WithQuery(q string) Criteria {
	c.Query = q
	return c
}

// ClearQuery drops the query and keeps the user selection.
func (c Criteria) ClearQuery() Criteria {
	c.Query = ""
	return c
}

func (c Criteria) Reset() Criteria {
	return Criteria{}
}

func (c Criteria) IsZero() bool {
	return c.UserID == nil && c.Query == ""
}

// SelectedUser returns the selected user id and whether one is selected.
func (c Criteria) SelectedUser() (int, bool) {
	if c.UserID == nil {
		return 0, false
	}
	return *c.UserID, true
}

func (c Criteria) IsUserSelected(id int) bool {
	return c.UserID != nil && *c.UserID == id
}
