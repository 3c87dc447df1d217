package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GuideSection holds the schema definition for the GuideSection entity.
type GuideSection struct {
	ent.Schema
}

// Fields of the GuideSection.
func (GuideSection) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("section_id").
			Unique().
			Immutable(),
		field.String("objective_id").
			NotEmpty(),
		field.String("title").
			Default(""),
		field.Int("position").
			Default(0),
	}
}

// Edges of the GuideSection.
func (GuideSection) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("exploration", Exploration.Type).
			Ref("sections").
			Field("objective_id").
			Unique().
			Required(),
		edge.To("questions", GuideQuestion.Type),
	}
}

// Indexes of the GuideSection.
func (GuideSection) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("objective_id", "position"),
	}
}
