package cli

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"
	"time"

	"github.com/rcliao/paramlist/internal/model"
	"github.com/rcliao/paramlist/internal/store"
)

type paramView struct {
	Index   int           `json:"index" yaml:"index"`
	ID      string        `json:"id" yaml:"id"`
	Type    string        `json:"type" yaml:"type"`
	Value   string        `json:"value,omitempty" yaml:"value,omitempty"`
	Object  *model.Object `json:"object,omitempty" yaml:"object,omitempty"`
	Comment string        `json:"comment,omitempty" yaml:"comment,omitempty"`
}

type listView struct {
	Name       string       `json:"name" yaml:"name"`
	ID         model.ListID `json:"id" yaml:"id"`
	Comment    string       `json:"comment,omitempty" yaml:"comment,omitempty"`
	CreatedAt  time.Time    `json:"created_at" yaml:"created_at"`
	UpdatedAt  time.Time    `json:"updated_at" yaml:"updated_at"`
	Parameters []paramView  `json:"parameters" yaml:"parameters"`
}

// result reports the outcome of an edit that may be a no-op.
type result struct {
	OK        bool       `json:"ok" yaml:"ok"`
	Warning   string     `json:"warning,omitempty" yaml:"warning,omitempty"`
	Parameter *paramView `json:"parameter,omitempty" yaml:"parameter,omitempty"`
}

func newParamView(l *model.List, p *model.Parameter) paramView {
	v := paramView{
		Index:   l.Index(p),
		ID:      p.ID(),
		Type:    p.TypeKey(),
		Comment: p.Comment(),
	}
	if model.IsObjectKind(p.MajorType()) {
		v.Object = p.ObjectValue()
	} else {
		v.Value = p.Format()
	}
	return v
}

func newListView(rec *store.ListRecord) listView {
	v := listView{
		Name:       rec.Name,
		ID:         rec.List.ID(),
		Comment:    rec.List.Comment(),
		CreatedAt:  rec.CreatedAt,
		UpdatedAt:  rec.UpdatedAt,
		Parameters: []paramView{},
	}
	for _, p := range rec.List.Parameters() {
		v.Parameters = append(v.Parameters, newParamView(rec.List, p))
	}
	return v
}

func writeListText(w io.Writer, v listView) {
	fmt.Fprintf(w, "%s (%s)\n", v.Name, v.ID)
	if v.Comment != "" {
		fmt.Fprintf(w, "# %s\n", v.Comment)
	}
	writeParamsText(w, v.Parameters)
}

func writeParamsText(w io.Writer, params []paramView) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	for _, p := range params {
		value := p.Value
		if p.Object != nil {
			value = fmt.Sprintf("<%s %s %s>", p.Object.Kind, p.Object.ID, p.Object.Name)
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", p.Index, p.ID, p.Type, value, p.Comment)
	}
	tw.Flush()
}

// isSoft reports whether err is a list edit that was refused without
// changing anything. Those are reported, not fatal.
func isSoft(err error) bool {
	return errors.Is(err, model.ErrParameterNotFound) ||
		errors.Is(err, model.ErrAtBoundary) ||
		errors.Is(err, model.ErrNilParameter)
}

// pickParameter selects a parameter by position when index >= 0, otherwise
// the first one with the given id.
func pickParameter(l *model.List, id string, index int) (*model.Parameter, error) {
	if index >= 0 {
		params := l.Parameters()
		if index >= len(params) {
			return nil, fmt.Errorf("%w: index %d", model.ErrParameterNotFound, index)
		}
		return params[index], nil
	}
	p := l.FindParameter(id)
	if p == nil {
		return nil, fmt.Errorf("%w: %q", model.ErrParameterNotFound, id)
	}
	return p, nil
}
