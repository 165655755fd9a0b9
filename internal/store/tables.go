package store

import (
	"fmt"
	"reflect"
	"strings"

	"entgo.io/ent"
	"entgo.io/ent/dialect/sql/schema"
	"entgo.io/ent/schema/field"

	entschema "github.com/abhisek/quizflip/ent/schema"
)

// Table names for the persisted entities.
const (
	answerEventsTable     = "answer_events"
	llmRequestEventsTable = "llm_request_events"
	sessionEventsTable    = "session_events"
	sessionRecordsTable   = "session_records"
)

var entities = []struct {
	table  string
	schema ent.Interface
}{
	{answerEventsTable, entschema.AnswerEvent{}},
	{llmRequestEventsTable, entschema.LLMRequestEvent{}},
	{sessionEventsTable, entschema.SessionEvent{}},
	{sessionRecordsTable, entschema.SessionRecord{}},
}

// Tables builds the migration tables from the ent schema definitions.
func Tables() []*schema.Table {
	tables := make([]*schema.Table, 0, len(entities))
	for _, e := range entities {
		tables = append(tables, tableFor(e.table, e.schema))
	}
	return tables
}

func tableFor(name string, s ent.Interface) *schema.Table {
	t := schema.NewTable(name).
		AddPrimary(&schema.Column{Name: "id", Type: field.TypeInt, Increment: true})

	var fields []ent.Field
	var indexes []ent.Index
	for _, m := range s.Mixin() {
		fields = append(fields, m.Fields()...)
		indexes = append(indexes, m.Indexes()...)
	}
	fields = append(fields, s.Fields()...)
	indexes = append(indexes, s.Indexes()...)

	for _, f := range fields {
		t.AddColumn(columnFor(f.Descriptor()))
	}

	prefix := strings.ToLower(reflect.TypeOf(s).Name())
	for _, idx := range indexes {
		d := idx.Descriptor()
		t.AddIndex(fmt.Sprintf("%s_%s", prefix, strings.Join(d.Fields, "_")), d.Unique, d.Fields)
	}
	return t
}

func columnFor(d *field.Descriptor) *schema.Column {
	c := &schema.Column{
		Name:     d.Name,
		Type:     d.Info.Type,
		Size:     int64(d.Size),
		Unique:   d.Unique,
		Nullable: d.Optional,
		Comment:  d.Comment,
	}
	// Function defaults (time.Now) are applied by the repositories.
	if d.Default != nil && reflect.TypeOf(d.Default).Kind() != reflect.Func {
		c.Default = d.Default
	}
	return c
}
