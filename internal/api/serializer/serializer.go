// Package serializer converts stored records into their external JSON form.
// Every record attribute is always present in the output.
package serializer

import (
	"github.com/daap14/crewdesk/internal/project"
	"github.com/daap14/crewdesk/internal/teammate"
)

// ProjectRecord is the wire form of a project.
type ProjectRecord struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// TeammateRecord is the wire form of a teammate.
type TeammateRecord struct {
	ID       int64  `json:"id"`
	Name     string `json:"name"`
	Function string `json:"function"`
}

func Project(p *project.Project) ProjectRecord {
	return ProjectRecord{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
	}
}

// Projects serializes a list, returning an empty (non-nil) slice for no input.
func Projects(ps []project.Project) []ProjectRecord {
	out := make([]ProjectRecord, 0, len(ps))
	for i := range ps {
		out = append(out, Project(&ps[i]))
	}
	return out
}

func Teammate(t *teammate.Teammate) TeammateRecord {
	return TeammateRecord{
		ID:       t.ID,
		Name:     t.Name,
		Function: t.Function,
	}
}

// Teammates serializes a list, returning an empty (non-nil) slice for no input.
func Teammates(ts []teammate.Teammate) []TeammateRecord {
	out := make([]TeammateRecord, 0, len(ts))
	for i := range ts {
		out = append(out, Teammate(&ts[i]))
	}
	return out
}
