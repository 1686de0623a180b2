// Package operations is the table of HTTP operations the service exposes,
// each with the JSON Schemas of its request body and response data.
package operations

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"github.com/xeipuuv/gojsonschema"
)

//go:embed schemas.json
var schemaDoc []byte

const (
	Login           = "login"
	Refresh         = "refresh"
	GetProfile      = "get_profile"
	UpdateProfile   = "update_profile"
	UpdateSkills    = "update_skills"
	ListJobs        = "list_jobs"
	GetJob          = "get_job"
	LogAction       = "log_action"
	CompleteCourse  = "complete_course"
	ListCourses     = "list_courses"
	ListLifeActions = "list_life_actions"
	ListSkills      = "list_skills"
	ParseResume     = "parse_resume"
	Health          = "health"
)

// Spec declares one operation. Input and Output name definitions in
// schemas.json; an empty Input means the operation takes no body. Auth
// operations are scoped to the :user_id of the bearer token.
type Spec struct {
	Name   string
	Method string
	Path   string
	Auth   bool
	Root   bool
	Input  string
	Output string
}

// Table lists every operation. Paths are relative to /api/v1 unless Root.
var Table = []Spec{
	{Name: Login, Method: "POST", Path: "/auth/login", Input: "login_input", Output: "login_output"},
	{Name: Refresh, Method: "POST", Path: "/auth/refresh", Output: "refresh_output"},
	{Name: GetProfile, Method: "GET", Path: "/users/:user_id", Auth: true, Output: "profile_output"},
	{Name: UpdateProfile, Method: "PATCH", Path: "/users/:user_id", Auth: true, Input: "update_profile_input", Output: "profile_output"},
	{Name: UpdateSkills, Method: "PUT", Path: "/users/:user_id/skills", Auth: true, Input: "update_skills_input", Output: "profile_output"},
	{Name: ListJobs, Method: "GET", Path: "/users/:user_id/jobs", Auth: true, Output: "job_list_output"},
	{Name: GetJob, Method: "GET", Path: "/users/:user_id/jobs/:job_id", Auth: true, Output: "job_output"},
	{Name: LogAction, Method: "POST", Path: "/users/:user_id/actions", Auth: true, Input: "log_action_input", Output: "log_action_output"},
	{Name: CompleteCourse, Method: "POST", Path: "/users/:user_id/courses/:course_id/complete", Auth: true, Output: "complete_course_output"},
	{Name: ListCourses, Method: "GET", Path: "/courses", Output: "course_list_output"},
	{Name: ListLifeActions, Method: "GET", Path: "/life-actions", Output: "life_actions_output"},
	{Name: ListSkills, Method: "GET", Path: "/skills", Output: "skill_list_output"},
	{Name: ParseResume, Method: "POST", Path: "/resume/parse", Input: "parse_resume_input", Output: "parse_resume_output"},
	{Name: Health, Method: "GET", Path: "/health", Root: true, Output: "health_output"},
}

type Operation struct {
	Spec
	input  *gojsonschema.Schema
	output *gojsonschema.Schema
}

type Registry struct {
	ops map[string]*Operation
}

// Load compiles the schemas of every operation in Table. Any missing or
// invalid schema is an error.
func Load() (*Registry, error) {
	return New(Table, schemaDoc)
}

func New(table []Spec, doc []byte) (*Registry, error) {
	var root struct {
		Definitions map[string]json.RawMessage `json:"definitions"`
	}
	if err := json.Unmarshal(doc, &root); err != nil {
		return nil, fmt.Errorf("operations: parse schemas: %w", err)
	}
	defs := make(map[string]any, len(root.Definitions))
	for k, v := range root.Definitions {
		var d any
		if err := json.Unmarshal(v, &d); err != nil {
			return nil, fmt.Errorf("operations: definition %s: %w", k, err)
		}
		defs[k] = d
	}

	compile := func(name string) (*gojsonschema.Schema, error) {
		if _, ok := defs[name]; !ok {
			return nil, fmt.Errorf("operations: unknown schema %q", name)
		}
		s, err := gojsonschema.NewSchema(gojsonschema.NewGoLoader(map[string]any{
			"$ref":        "#/definitions/" + name,
			"definitions": defs,
		}))
		if err != nil {
			return nil, fmt.Errorf("operations: compile %s: %w", name, err)
		}
		return s, nil
	}

	r := &Registry{ops: make(map[string]*Operation, len(table))}
	for _, spec := range table {
		if spec.Name == "" || spec.Output == "" {
			return nil, fmt.Errorf("operations: incomplete spec %+v", spec)
		}
		if _, dup := r.ops[spec.Name]; dup {
			return nil, fmt.Errorf("operations: duplicate operation %s", spec.Name)
		}
		op := &Operation{Spec: spec}
		var err error
		if spec.Input != "" {
			if op.input, err = compile(spec.Input); err != nil {
				return nil, err
			}
		}
		if op.output, err = compile(spec.Output); err != nil {
			return nil, err
		}
		r.ops[spec.Name] = op
	}
	return r, nil
}

func (r *Registry) Get(name string) (*Operation, bool) {
	if r == nil {
		return nil, false
	}
	op, ok := r.ops[name]
	return op, ok
}

// MustGet is for route wiring, where a missing operation is a programming error.
func (r *Registry) MustGet(name string) *Operation {
	op, ok := r.Get(name)
	if !ok {
		panic("operations: unknown operation " + name)
	}
	return op
}

// All returns the operations ordered by path, then method.
func (r *Registry) All() []*Operation {
	out := make([]*Operation, 0, len(r.ops))
	for _, op := range r.ops {
		out = append(out, op)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Path != out[j].Path {
			return out[i].Path < out[j].Path
		}
		return out[i].Method < out[j].Method
	})
	return out
}

func (o *Operation) HasInput() bool {
	return o != nil && o.input != nil
}

// ValidateInput checks a raw request body. An operation without an input
// schema accepts anything.
func (o *Operation) ValidateInput(body []byte) error {
	if !o.HasInput() {
		return nil
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "request body is required"}}}
	}
	if !json.Valid(body) {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: "request body is not valid JSON"}}}
	}
	return validate(o.input, gojsonschema.NewBytesLoader(body))
}

// ValidateOutput checks the JSON encoding of v against the output schema.
func (o *Operation) ValidateOutput(v any) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return validate(o.output, gojsonschema.NewBytesLoader(b))
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type ValidationError struct {
	Errors []FieldError
}

func (ve *ValidationError) Error() string {
	var sb strings.Builder
	sb.WriteString("validation failed:")
	for _, e := range ve.Errors {
		sb.WriteString(" ")
		sb.WriteString(e.Field)
		sb.WriteString(": ")
		sb.WriteString(e.Message)
		sb.WriteString(";")
	}
	return sb.String()
}

func validate(s *gojsonschema.Schema, doc gojsonschema.JSONLoader) error {
	result, err := s.Validate(doc)
	if err != nil {
		return &ValidationError{Errors: []FieldError{{Field: "(root)", Message: err.Error()}}}
	}
	if result.Valid() {
		return nil
	}
	ve := &ValidationError{Errors: make([]FieldError, 0, len(result.Errors()))}
	for _, desc := range result.Errors() {
		field := desc.Field()
		if field == "" {
			field = "(root)"
		}
		ve.Errors = append(ve.Errors, FieldError{Field: field, Message: desc.Description()})
	}
	return ve
}
