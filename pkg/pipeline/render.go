package pipeline

import (
	"context"

	"github.com/kkpan11/heavydb/pkg/errors"
	"github.com/kkpan11/heavydb/pkg/explain"
	"github.com/kkpan11/heavydb/pkg/jsonb"
	"github.com/kkpan11/heavydb/pkg/plan"
	"github.com/kkpan11/heavydb/pkg/render/nodelink"
)

// Render explains the plan under root and renders it in opts.Format. It
// returns the output and the number of relation records written. Only the
// output fields of opts are used; opts.Plan may be empty.
func Render(ctx context.Context, root plan.Node, opts Options) ([]byte, int, error) {
	if opts.Format == "" {
		opts.Format = DefaultFormat
	}
	if err := ValidateFormat(opts.Format); err != nil {
		return nil, 0, err
	}

	renderer := jsonb.NewBuilder()
	if opts.Compact {
		renderer = &jsonb.Builder{}
	}
	w := explain.NewWriter(explain.WithRenderer(renderer), explain.WithLogger(opts.Logger))
	if err := w.Explain(root); err != nil {
		return nil, 0, err
	}

	switch opts.Format {
	case FormatJSON:
		s, err := w.JSON()
		if err != nil {
			return nil, 0, err
		}
		return []byte(s + "\n"), w.Len(), nil

	case FormatText:
		s, err := explain.Text(root, explain.WithIDs(w))
		if err != nil {
			return nil, 0, err
		}
		return []byte(s), w.Len(), nil

	case FormatDOT, FormatSVG:
		dot, err := nodelink.ToDOT(root, nodelink.Options{IDs: w, Detailed: opts.Detailed})
		if err != nil {
			return nil, 0, errors.Wrap(errors.ErrCodeInvalidPlan, err, "build DOT")
		}
		if opts.Format == FormatDOT {
			return []byte(dot), w.Len(), nil
		}
		svg, err := nodelink.RenderSVG(ctx, dot)
		if err != nil {
			return nil, 0, errors.Wrap(errors.ErrCodeCollaborator, err, "render SVG")
		}
		return svg, w.Len(), nil
	}
	return nil, 0, ValidateFormat(opts.Format)
}
