// Package display renders command results for humans.
//
// Rendering is template driven: each result type has a .tmpl file whose
// output carries style tags. The tags are expanded to ANSI sequences by
// pkg/ui/markup, or stripped when plain text output is wanted.
package display

import (
	"bytes"
	"embed"
	"fmt"
	"io"
	"os"
	"strings"
	"text/template"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/recule556688/obsidian-dotfiles/pkg/logging"
	"github.com/recule556688/obsidian-dotfiles/pkg/types"
	"github.com/recule556688/obsidian-dotfiles/pkg/ui/markup"
	"github.com/recule556688/obsidian-dotfiles/pkg/ui/styles"
)

//go:embed templates/*.tmpl
var templatesFS embed.FS

// tagEscaper protects data values from being read as markup. Templates
// apply it to every interpolated path and name.
var tagEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

var templateFuncs = template.FuncMap{
	"esc": tagEscaper.Replace,
	"humanSize": func(n int64) string {
		return humanize.Bytes(uint64(n))
	},
	"timeFormat": func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	},
	"relTime": humanize.Time,
}

// Renderer turns result structs into styled terminal output.
type Renderer struct {
	templates *template.Template
	writer    io.Writer
	noColor   bool
}

// New creates a renderer writing to w. With noColor set, style tags are
// stripped instead of expanded, producing plain text.
func New(w io.Writer, noColor bool) (*Renderer, error) {
	log := logging.GetLogger("ui.display")

	log.Debug().
		Bool("noColor", noColor).
		Str("NO_COLOR_env", os.Getenv("NO_COLOR")).
		Str("TERM", os.Getenv("TERM")).
		Msg("Creating renderer")

	if !noColor {
		// Bind color detection to the actual output writer
		renderer := lipgloss.NewRenderer(w)
		markup.SetDefaultRenderer(renderer)

		log.Debug().
			Str("colorProfile", fmt.Sprintf("%v", renderer.ColorProfile())).
			Msg("Markup renderer created")
	}

	tmpl, err := template.New("display").Funcs(templateFuncs).ParseFS(templatesFS, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse templates: %w", err)
	}

	return &Renderer{
		templates: tmpl,
		writer:    w,
		noColor:   noColor,
	}, nil
}

// RenderResult renders a known result type through its template. Unknown
// types fall back to their Go representation.
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *types.InstallResult:
		return r.render("install.tmpl", v)
	case *types.ListVaultsResult:
		return r.render("list.tmpl", v)
	case *types.OrganizeResult:
		return r.render("organize.tmpl", v)
	case *types.LinkResult:
		return r.render("link.tmpl", v)
	case *types.BackupsResult:
		return r.render("backups.tmpl", v)
	case *types.GenConfigResult:
		return r.render("genconfig.tmpl", v)
	default:
		_, err := fmt.Fprintf(r.writer, "%+v\n", result)
		return err
	}
}

// RenderError renders an error message with error styling.
func (r *Renderer) RenderError(err error) error {
	return r.write("<Error>Error:</Error> " + tagEscaper.Replace(err.Error()) + "\n")
}

// RenderMessage renders a one line informational message.
func (r *Renderer) RenderMessage(msg string) error {
	return r.write("<Info>" + tagEscaper.Replace(msg) + "</Info>\n")
}

func (r *Renderer) render(name string, data interface{}) error {
	var buf bytes.Buffer
	if err := r.templates.ExecuteTemplate(&buf, name, data); err != nil {
		return fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return r.write(buf.String())
}

func (r *Renderer) write(content string) error {
	var out string
	if r.noColor {
		out = markup.StripTags(content)
	} else {
		var err error
		out, err = markup.ExpandTags(content, markup.StyleMap(styles.StyleRegistry))
		if err != nil {
			return fmt.Errorf("failed to expand style tags: %w", err)
		}
	}

	_, err := fmt.Fprint(r.writer, out)
	return err
}
