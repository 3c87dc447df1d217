package schema

import (
	"entgo.io/ent"
	"entgo.io/ent/schema/edge"
	"entgo.io/ent/schema/field"
	"entgo.io/ent/schema/index"
)

// GuideQuestion holds the schema definition for the GuideQuestion entity.
type GuideQuestion struct {
	ent.Schema
}

// Fields of the GuideQuestion.
func (GuideQuestion) Fields() []ent.Field {
	return []ent.Field{
		field.String("id").
			StorageKey("question_id").
			Unique().
			Immutable(),
		field.String("section_id").
			NotEmpty(),
		field.Text("text").
			Default(""),
		field.Int("position").
			Default(0),
	}
}

// Edges of the GuideQuestion.
func (GuideQuestion) Edges() []ent.Edge {
	return []ent.Edge{
		edge.From("section", GuideSection.Type).
			Ref("questions").
			Field("section_id").
			Unique().
			Required(),
	}
}

// Indexes of the GuideQuestion.
func (GuideQuestion) Indexes() []ent.Index {
	return []ent.Index{
		index.Fields("section_id", "position"),
	}
}
