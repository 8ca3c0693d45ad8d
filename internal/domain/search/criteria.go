// Package search holds the validated search request, the must-include
// filter grammar, and the staged query plan the store drivers execute.
package search

import (
	"strings"

	"github.com/gem5vision/resources-api/internal/domain"
)

// Criteria is the structured form of the must-include filter grammar: an
// insertion-ordered mapping from field name to the values the field must
// match (set membership). Criteria are AND-combined across fields; values
// within one field are OR-combined.
type Criteria struct {
	fields []string
	values map[string][]string
}

// ParseMustInclude decodes the must-include encoding:
//
//	field1,value1,value2;field2,value3
//
// Groups are separated by ';'. Within a group the first comma-separated
// token is the field name, the rest are its values. Empty groups (";;" or a
// trailing ';') are skipped. A non-empty group with fewer than two tokens
// fails the whole parse. A field repeated in a later group overwrites the
// earlier values but keeps the field's original position.
func ParseMustInclude(s string) (Criteria, error) {
	var c Criteria
	if s == "" {
		return c, nil
	}
	for _, group := range strings.Split(s, ";") {
		if group == "" {
			continue
		}
		parts := strings.Split(group, ",")
		if len(parts) < 2 {
			return Criteria{}, domain.BadRequestf("Invalid filter format")
		}
		c.set(parts[0], parts[1:])
	}
	return c, nil
}

func (c *Criteria) set(field string, values []string) {
	if c.values == nil {
		c.values = make(map[string][]string)
	}
	if _, seen := c.values[field]; !seen {
		c.fields = append(c.fields, field)
	}
	c.values[field] = values
}

// Len returns the number of distinct filtered fields.
func (c Criteria) Len() int { return len(c.fields) }

// Has reports whether the field is constrained.
func (c Criteria) Has(field string) bool {
	_, ok := c.values[field]
	return ok
}

// Values returns the acceptable values for the field, in listed order.
func (c Criteria) Values(field string) []string { return c.values[field] }

// Fields returns the constrained field names in first-seen order.
func (c Criteria) Fields() []string { return c.fields }
