package models

// Category classifies needed items. Categories are seeded at startup and the
// folded name is unique.
type Category struct {
	ID     int64  `bson:"_id" json:"id" yaml:"-"`
	Name   string `bson:"name" json:"name" yaml:"name"`
	NameCI string `bson:"name_ci" json:"-" yaml:"-"`
	Color  string `bson:"color" json:"color" yaml:"color"`
}
