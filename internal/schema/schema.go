// Package schema is the static registry describing every entity kind the
// portal persists: its fields, constraints, list-query surface and fixed
// ordering. The validator, filter builder and repository are all driven off
// this data rather than per-entity code.
package schema

import "fmt"

// Kind is the storage type of a field.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindNullString
	KindNullInt
)

// Field describes one entity field.
type Field struct {
	// Name is the JSON field name; Column the Postgres column.
	Name   string
	Column string
	// Label is the human name used in validation messages.
	Label string
	Kind  Kind
	// Required marks fields that must be present and non-blank on create.
	Required bool
	// Enum restricts the value to a fixed set; validation messages
	// enumerate it.
	Enum []string
	// Bounds is a validator/v10 tag applied to coerced integers,
	// e.g. "gte=1,lte=4". InvalidMessage is the fixed message reported
	// when coercion or the bounds check fails.
	Bounds         string
	InvalidMessage string
	// Fold lowercases the value before validation and storage.
	Fold bool
	// System fields are stamped by the validator and never client-settable.
	System bool
	// CreateAsNull fields are stored NULL on create regardless of payload.
	CreateAsNull bool
}

// SortKey is one component of an entity's fixed list ordering.
type SortKey struct {
	Column string
	Desc   bool
}

// Entity describes one entity kind.
type Entity struct {
	// Name is the registry key and the route segment under /api.
	Name    string
	Table   string
	Display string
	// DeleteKey is the JSON key carrying the deleted record in the
	// delete confirmation payload.
	DeleteKey string
	Fields    []Field
	// SearchFields are the JSON names of text fields matched by the free
	// `search` parameter (case-insensitive substring, OR-combined).
	SearchFields []string
	// ExactMatch are the JSON names of query parameters matched by
	// equality (AND-combined).
	ExactMatch []string
	// Sort is the fixed, non-client-selectable list ordering.
	Sort []SortKey
	// UpdateHook adjusts a sanitized update patch after field validation.
	UpdateHook func(patch map[string]interface{})
}

// Field returns the descriptor for a JSON field name.
func (e Entity) Field(name string) (Field, bool) {
	for _, f := range e.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Columns returns the id column followed by every field column, in
// declaration order.
func (e Entity) Columns() []string {
	cols := make([]string, 0, len(e.Fields)+1)
	cols = append(cols, "id")
	for _, f := range e.Fields {
		cols = append(cols, f.Column)
	}
	return cols
}

var registry = map[string]Entity{}
var order []string

func register(e Entity) {
	registry[e.Name] = e
	order = append(order, e.Name)
}

// Lookup returns the entity descriptor for a kind. Unknown kinds are a
// programming error.
func Lookup(kind string) Entity {
	e, ok := registry[kind]
	if !ok {
		panic(fmt.Sprintf("schema: unknown entity kind %q", kind))
	}
	return e
}

// Entities returns every registered entity in declaration order.
func Entities() []Entity {
	out := make([]Entity, 0, len(order))
	for _, name := range order {
		out = append(out, registry[name])
	}
	return out
}

func init() {
	register(Entity{
		Name:      "assignments",
		Table:     "assignments",
		Display:   "Assignment",
		DeleteKey: "assignment",
		Fields: []Field{
			{Name: "title", Column: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "description", Column: "description", Label: "Description", Kind: KindString, Required: true},
			{Name: "subject", Column: "subject", Label: "Subject", Kind: KindString, Required: true},
			{Name: "facultyName", Column: "faculty_name", Label: "Faculty name", Kind: KindString, Required: true},
			{Name: "dueDate", Column: "due_date", Label: "Due date", Kind: KindString, Required: true},
			{Name: "totalMarks", Column: "total_marks", Label: "Total marks", Kind: KindInt, Required: true,
				Bounds: "gt=0", InvalidMessage: "Total marks must be a positive integer"},
			{Name: "department", Column: "department", Label: "Department", Kind: KindString, Required: true},
			{Name: "year", Column: "year", Label: "Year", Kind: KindInt, Required: true,
				Bounds: "gte=1,lte=4", InvalidMessage: "Year must be between 1 and 4"},
			{Name: "createdAt", Column: "created_at", Label: "Created at", Kind: KindString, System: true},
		},
		SearchFields: []string{"title", "description"},
		ExactMatch:   []string{"subject", "department", "year"},
		Sort:         []SortKey{{Column: "due_date"}},
	})

	register(Entity{
		Name:      "notices",
		Table:     "notices",
		Display:   "Notice",
		DeleteKey: "notice",
		Fields: []Field{
			{Name: "title", Column: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "content", Column: "content", Label: "Content", Kind: KindString, Required: true},
			{Name: "author", Column: "author", Label: "Author", Kind: KindString, Required: true},
			{Name: "authorRole", Column: "author_role", Label: "Author role", Kind: KindString, Required: true,
				Enum: []string{"faculty", "admin"}},
			{Name: "department", Column: "department", Label: "Department", Kind: KindString, Required: true},
			{Name: "priority", Column: "priority", Label: "Priority", Kind: KindString, Required: true,
				Enum: []string{"low", "medium", "high"}},
			{Name: "createdAt", Column: "created_at", Label: "Created at", Kind: KindString, System: true},
		},
		SearchFields: []string{"title", "content"},
		ExactMatch:   []string{"priority", "department", "authorRole"},
		Sort:         []SortKey{{Column: "created_at", Desc: true}},
	})

	register(Entity{
		Name:      "resources",
		Table:     "resources",
		Display:   "Resource",
		DeleteKey: "resource",
		Fields: []Field{
			{Name: "title", Column: "title", Label: "Title", Kind: KindString, Required: true},
			{Name: "type", Column: "type", Label: "Type", Kind: KindString, Required: true,
				Enum: []string{"pdf", "video", "link", "document"}},
			{Name: "subject", Column: "subject", Label: "Subject", Kind: KindString, Required: true},
			{Name: "uploadedBy", Column: "uploaded_by", Label: "Uploaded by", Kind: KindString, Required: true},
			{Name: "uploadDate", Column: "upload_date", Label: "Upload date", Kind: KindString, Required: true},
			{Name: "url", Column: "url", Label: "URL", Kind: KindString, Required: true},
			{Name: "department", Column: "department", Label: "Department", Kind: KindString, Required: true},
			{Name: "createdAt", Column: "created_at", Label: "Created at", Kind: KindString, System: true},
		},
		SearchFields: []string{"title", "subject"},
		ExactMatch:   []string{"type", "subject", "department"},
		Sort:         []SortKey{{Column: "upload_date", Desc: true}},
	})

	register(Entity{
		Name:      "submissions",
		Table:     "submissions",
		Display:   "Submission",
		DeleteKey: "submission",
		Fields: []Field{
			{Name: "assignmentId", Column: "assignment_id", Label: "Assignment ID", Kind: KindInt, Required: true,
				Bounds: "gt=0", InvalidMessage: "Assignment ID must be a positive integer"},
			{Name: "studentId", Column: "student_id", Label: "Student ID", Kind: KindString, Required: true},
			{Name: "studentName", Column: "student_name", Label: "Student name", Kind: KindString, Required: true},
			{Name: "submittedDate", Column: "submitted_date", Label: "Submitted date", Kind: KindString, Required: true},
			{Name: "fileUrl", Column: "file_url", Label: "File URL", Kind: KindNullString},
			{Name: "grade", Column: "grade", Label: "Grade", Kind: KindNullInt, CreateAsNull: true,
				Bounds: "gte=0,lte=100", InvalidMessage: "Grade must be between 0 and 100"},
			{Name: "feedback", Column: "feedback", Label: "Feedback", Kind: KindNullString, CreateAsNull: true},
			{Name: "status", Column: "status", Label: "Status", Kind: KindString, Required: true,
				Enum: []string{"submitted", "graded", "late"}},
			{Name: "createdAt", Column: "created_at", Label: "Created at", Kind: KindString, System: true},
		},
		SearchFields: []string{"studentName"},
		ExactMatch:   []string{"assignmentId", "studentId", "status"},
		Sort:         []SortKey{{Column: "submitted_date", Desc: true}},
		// A non-null grade in a patch forces the graded status; an explicit
		// status is honored only when grade is absent.
		UpdateHook: func(patch map[string]interface{}) {
			if _, ok := patch["grade"]; ok {
				patch["status"] = "graded"
			}
		},
	})

	register(Entity{
		Name:      "timetable",
		Table:     "timetable_entries",
		Display:   "Timetable entry",
		DeleteKey: "entry",
		Fields: []Field{
			{Name: "day", Column: "day", Label: "Day", Kind: KindString, Required: true},
			{Name: "time", Column: "time", Label: "Time", Kind: KindString, Required: true},
			{Name: "subject", Column: "subject", Label: "Subject", Kind: KindString, Required: true},
			{Name: "faculty", Column: "faculty", Label: "Faculty", Kind: KindString, Required: true},
			{Name: "room", Column: "room", Label: "Room", Kind: KindString, Required: true},
			{Name: "type", Column: "type", Label: "Type", Kind: KindString, Required: true, Fold: true,
				Enum: []string{"lecture", "lab", "tutorial"}},
			{Name: "createdAt", Column: "created_at", Label: "Created at", Kind: KindString, System: true},
		},
		SearchFields: []string{"subject", "faculty", "room"},
		ExactMatch:   []string{"day", "type"},
		Sort:         []SortKey{{Column: "day"}, {Column: "time"}},
	})
}
