package signup

import "strings"

// Contacts maps "First Last" to the teacher's contact row
type Contacts map[string]*Contact

// ResolveContacts builds the name->contact map from the contact sheet.
// Row 0 is the header row. When two rows share a full name the later row wins.
func ResolveContacts(table [][]string) Contacts {
	contacts := make(Contacts)
	if len(table) == 0 {
		return contacts
	}

	headers := table[0]
	for _, row := range table[1:] {
		c := &Contact{Fields: make([]Field, len(headers))}
		for i, h := range headers {
			value := ""
			// The Sheets API trims trailing empty cells, so short rows are common
			if i < len(row) {
				value = row[i]
			}
			c.Fields[i] = Field{Name: h, Value: value}
		}
		contacts[c.FullName()] = c
	}

	return contacts
}

// Lookup returns the contact for an exact full name
func (cs Contacts) Lookup(name string) (*Contact, bool) {
	c, ok := cs[name]
	return c, ok
}

func fullName(first, last string) string {
	return strings.TrimSpace(first + " " + last)
}
