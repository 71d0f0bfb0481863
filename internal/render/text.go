// Package render formats decoded DX7 dumps as text for diffing, and as
// JSON or YAML for other programs.
package render

import (
	"embed"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/Masterminds/sprig"
	"github.com/fjl/dx7dump/dx7"
)

// Options selects what is rendered.
type Options struct {
	Long    bool // show parameter values
	Compact bool // several names per row, or operators as a table with Long
	Patch   int  // 1-based voice number for the long listing, 0 for all
	Hex     bool // add name bytes and the unpacked voice data in hex
	Unicode bool // translate names with the Unicode table
	Format  Format
}

//go:embed templates/*.tmpl
var templateFS embed.FS

var templates = template.Must(template.New("base").Funcs(sprig.TxtFuncMap()).Funcs(template.FuncMap{
	"hexbytes": hexBytes,
	"freq":     formatFrequency,
}).ParseFS(templateFS, "templates/*.tmpl"))

var (
	voiceSeparator = "\n" + strings.Repeat("=", 25+6*14) + "\n\n"
	voiceDivider   = strings.Repeat("-", 49) + "\n\n"
)

// Renderer writes the text form of dump files.
type Renderer struct {
	w    *stickyWriter
	opts Options
}

// New creates a renderer writing to w.
func New(w io.Writer, opts Options) *Renderer {
	return &Renderer{w: &stickyWriter{w: w}, opts: opts}
}

// Filename prints the file name header line.
func (r *Renderer) Filename(name string) {
	fmt.Fprintf(r.w, "File: \"%s\"\n", DisplayName(name))
}

// Printf writes a diagnostic line to the output.
func (r *Renderer) Printf(format string, args ...interface{}) {
	fmt.Fprintf(r.w, format, args...)
}

// File renders the voices in f. If warned is set, diagnostics naming the
// file have already been printed and the listing header is left out.
func (r *Renderer) File(name string, f *dx7.File, warned bool) error {
	switch {
	case f.Voice != nil:
		// A single voice is always shown in full.
		if err := r.voice(name, 1, f.Voice, ""); err != nil {
			return err
		}
	case !r.opts.Long:
		r.names(name, f.Bank, warned)
	default:
		if warned {
			io.WriteString(r.w, voiceSeparator)
		}
		for n := 1; n <= dx7.NumVoices; n++ {
			if r.opts.Patch > 0 && r.opts.Patch != n {
				continue
			}
			if err := r.voice(name, n, &f.Bank.Voices[n-1], r.separator(n)); err != nil {
				return err
			}
		}
	}
	return r.w.err
}

func (r *Renderer) separator(n int) string {
	switch {
	case r.opts.Patch > 0:
		return ""
	case r.opts.Compact || n == dx7.NumVoices:
		return voiceSeparator
	default:
		return voiceDivider
	}
}

// Duplicates prints the duplicate voice pairs of a bank.
func (r *Renderer) Duplicates(dupes []dx7.Duplicate) error {
	for _, d := range dupes {
		fmt.Fprintf(r.w, "Found duplicate: %v\n", d)
	}
	if len(dupes) > 0 {
		io.WriteString(r.w, "\n")
	}
	return r.w.err
}

// names prints the name listing.
func (r *Renderer) names(name string, b *dx7.Bank, warned bool) {
	rows, columns := dx7.NumVoices, 1
	delim := '|'
	switch {
	case r.opts.Compact && r.opts.Hex:
		rows, columns = 16, 2
	case r.opts.Compact:
		rows, columns = 8, 4
	case !r.opts.Hex:
		delim = ' '
	}

	if !warned {
		r.Filename(name)
	}
	for row := 0; row < rows; row++ {
		for col := 0; col < columns; col++ {
			i := col*rows + row
			v := &b.Voices[i]
			fmt.Fprintf(r.w, "%2d %c%10s%c ", i+1, delim, v.Name.Text(r.opts.Unicode), delim)
			if r.opts.Hex {
				fmt.Fprintf(r.w, " %s", v.Name.Hex())
			}
			if col < columns-1 {
				io.WriteString(r.w, "         ")
			}
		}
		io.WriteString(r.w, "\n")
	}
	io.WriteString(r.w, "\n")
}

type voiceData struct {
	File      string
	Voice     VoiceView
	Opts      Options
	Table     []tableRow
	Separator string
}

func (r *Renderer) voice(name string, n int, v *dx7.Voice, sep string) error {
	data := voiceData{
		File:      DisplayName(name),
		Voice:     NewVoiceView(n, v, r.opts.Unicode),
		Opts:      r.opts,
		Separator: sep,
	}
	if r.opts.Compact {
		data.Table = operatorTable(v)
	}
	if err := templates.ExecuteTemplate(r.w, "voice", data); err != nil {
		return fmt.Errorf("can't render voice %d: %v", n, err)
	}
	return nil
}

func hexBytes(b []byte) string {
	var sb strings.Builder
	for i, c := range b {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", c)
	}
	return sb.String()
}

// formatFrequency prints a frequency like C's %g.
func formatFrequency(f float64, fixed bool) string {
	if fixed {
		return fmt.Sprintf("%.6g Hz", f)
	}
	return fmt.Sprintf("%.6g", f)
}

// stickyWriter remembers the first write error.
type stickyWriter struct {
	w   io.Writer
	err error
}

func (w *stickyWriter) Write(b []byte) (int, error) {
	if w.err != nil {
		return 0, w.err
	}
	n, err := w.w.Write(b)
	w.err = err
	return n, err
}
