package notation

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-playnoise/synth"
	"github.com/cwbudde/algo-playnoise/synth/tune"
)

// MaxChannels bounds the channel number an entry may address.
const MaxChannels = 100

// Option mutates parser configuration.
type Option func(*config)

type config struct {
	strict bool
	logger *slog.Logger
}

// WithStrict makes unknown notes and instruments fatal instead of skipping
// them with a warning.
func WithStrict() Option {
	return func(cfg *config) {
		cfg.strict = true
	}
}

// WithLogger sets the logger that receives warnings about skipped notes and
// instruments.
func WithLogger(l *slog.Logger) Option {
	return func(cfg *config) {
		if l != nil {
			cfg.logger = l
		}
	}
}

type parser struct {
	cfg  config
	ctx  synth.Context
	tune tune.Tune
	line int
}

// Parse reads a score. c supplies the starting instrument, duration and
// volume; directives in the score derive new contexts from it. The key
// defaults to "C".
func Parse(c synth.Context, src string, opts ...Option) (tune.Tune, error) {
	return ParseReader(c, strings.NewReader(src), opts...)
}

// ParseReader is like [Parse] but reads from r.
func ParseReader(c synth.Context, r io.Reader, opts ...Option) (tune.Tune, error) {
	cfg := config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	p := &parser{cfg: cfg, ctx: c, tune: tune.Tune{Key: "C"}}
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		p.line++
		if err := p.parseLine(sc.Text()); err != nil {
			return tune.Tune{}, err
		}
	}
	if err := sc.Err(); err != nil {
		return tune.Tune{}, fmt.Errorf("notation: read: %w", err)
	}
	return p.tune, nil
}

func (p *parser) errorf(col int, format string, args ...any) error {
	return &SyntaxError{Line: p.line, Col: col + 1, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) parseLine(line string) error {
	line = stripComment(line)

	pos := 0
	for {
		pos = skipSpace(line, pos)
		if pos >= len(line) {
			return nil
		}

		word := scanWord(line, pos)
		if name := strings.ToLower(word); isDirective(name) {
			return p.parseDirective(line, pos+len(word), name)
		}

		next, err := p.parseEntry(line, pos)
		if err != nil {
			return err
		}
		pos = next
	}
}

func isDirective(name string) bool {
	switch name {
	case "key", "instrument", "duration", "volume":
		return true
	}
	return false
}

func (p *parser) parseDirective(line string, pos int, name string) error {
	rest := strings.TrimSpace(line[pos:])
	rest = strings.TrimSpace(strings.TrimLeft(rest, ":="))
	if rest == "" {
		return p.errorf(pos, "%s needs a value", name)
	}

	switch name {
	case "key":
		p.tune.Key = rest
	case "instrument":
		next, err := p.ctx.WithInstrument(rest)
		if err != nil {
			if p.cfg.strict {
				return err
			}
			p.cfg.logger.Warn("unknown instrument, keeping current", "line", p.line, "name", rest,
				"current", p.ctx.Instrument().Name)
		}
		p.ctx = next
	case "duration", "volume":
		v, err := strconv.ParseFloat(rest, 64)
		if err != nil || v < 0 || (name == "duration" && v == 0) {
			return p.errorf(pos, "invalid %s %q", name, rest)
		}
		if name == "duration" {
			p.ctx = p.ctx.WithDuration(v)
		} else {
			p.ctx = p.ctx.WithVolume(v)
		}
	}
	return nil
}

// parseEntry parses chN[...] at pos and returns the position after ']'.
func (p *parser) parseEntry(line string, pos int) (int, error) {
	if !strings.HasPrefix(strings.ToLower(line[pos:]), "ch") {
		return 0, p.errorf(pos, "expected directive or channel entry, got %q", scanWord(line, pos))
	}
	i := pos + 2
	start := i
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	ch, err := strconv.Atoi(line[start:i])
	if err != nil || ch < 1 || ch > MaxChannels {
		return 0, p.errorf(start, "invalid channel number %q", line[start:i])
	}
	if i >= len(line) || line[i] != '[' {
		return 0, p.errorf(i, "expected '[' after ch%d", ch)
	}
	end := strings.IndexByte(line[i:], ']')
	if end < 0 {
		return 0, p.errorf(i, "unclosed '['")
	}
	end += i

	for len(p.tune.Channels) < ch {
		p.tune.Channels = append(p.tune.Channels, nil)
	}

	body := line[i+1 : end]
	itemPos := i + 1
	for _, item := range splitItems(body) {
		note, ok, err := p.parseItem(item.text, itemPos+item.offset)
		if err != nil {
			return 0, err
		}
		if ok {
			p.tune.Channels[ch-1] = append(p.tune.Channels[ch-1], note)
		}
	}
	return end + 1, nil
}

type item struct {
	text   string
	offset int
}

func splitItems(body string) []item {
	var out []item
	start := -1
	for i := 0; i <= len(body); i++ {
		sep := i == len(body) || body[i] == ' ' || body[i] == '\t' || body[i] == ','
		switch {
		case sep && start >= 0:
			out = append(out, item{text: body[start:i], offset: start})
			start = -1
		case !sep && start < 0:
			start = i
		}
	}
	return out
}

// parseItem parses [dur:]P[-P...]. ok is false when the note was skipped.
func (p *parser) parseItem(text string, col int) (note synth.Note, ok bool, err error) {
	scale := 1.0
	pitches := text
	if i := strings.IndexByte(text, ':'); i >= 0 {
		scale, err = strconv.ParseFloat(text[:i], 64)
		if err != nil || scale <= 0 {
			return synth.Note{}, false, p.errorf(col, "invalid duration %q", text[:i])
		}
		pitches = text[i+1:]
	}
	duration := p.ctx.Duration() * scale

	var ps []synth.Pitch
	for _, tok := range strings.Split(pitches, "-") {
		pitch, rest, err := parsePitch(tok)
		if err != nil {
			var unk *synth.UnknownNoteError
			if errors.As(err, &unk) && !p.cfg.strict {
				p.cfg.logger.Warn("skipping unknown note", "line", p.line, "col", col+1, "token", tok)
				return synth.Note{}, false, nil
			}
			if errors.As(err, &unk) {
				return synth.Note{}, false, err
			}
			return synth.Note{}, false, p.errorf(col, "%v", err)
		}
		if !rest {
			ps = append(ps, pitch)
		}
	}

	if len(ps) == 0 {
		return p.ctx.Rest(duration), true, nil
	}
	return p.ctx.Note(duration, ps...), true, nil
}

// parsePitch resolves one pitch token: a note name, a raw frequency in Hz
// or Z. rest is true for Z.
func parsePitch(tok string) (pitch synth.Pitch, rest bool, err error) {
	switch {
	case tok == "":
		return synth.Pitch{}, false, errors.New("empty pitch")
	case tok == "Z" || tok == "z":
		return synth.Pitch{}, true, nil
	case tok[0] >= '0' && tok[0] <= '9' || tok[0] == '.':
		f, err := synth.ResolvePitch(tok)
		if err != nil {
			return synth.Pitch{}, false, err
		}
		return synth.Pitch{Frequency: f}, false, nil
	case len(tok) < 2 || len(tok) > 3:
		return synth.Pitch{}, false, fmt.Errorf("invalid note structure %q", tok)
	}

	if len(tok) == 3 && (tok[1] == '#' || tok[1] == 'b') {
		f, err := synth.NoteFrequency(tok)
		if err != nil {
			return synth.Pitch{}, false, err
		}
		return synth.Pitch{Frequency: f}, false, nil
	}

	f, err := synth.NoteFrequency(tok[:2])
	if err != nil {
		return synth.Pitch{}, false, &synth.UnknownNoteError{Token: tok}
	}
	pitch = synth.Pitch{Frequency: f}
	if len(tok) == 3 {
		switch tok[2] {
		case '#':
			pitch.Accidental = 1
		case 'b':
			pitch.Accidental = -1
		default:
			return synth.Pitch{}, false, fmt.Errorf("invalid accidental %q", tok[2:])
		}
	}
	return pitch, false, nil
}

// stripComment cuts the line at the first '#' that starts a word. A '#'
// inside a pitch such as "C#4" or "A4#" is kept.
func stripComment(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != '#' {
			continue
		}
		if i == 0 || line[i-1] == ' ' || line[i-1] == '\t' {
			return line[:i]
		}
	}
	return line
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == ',') {
		i++
	}
	return i
}

func scanWord(s string, i int) string {
	j := i
	for j < len(s) && s[j] != ' ' && s[j] != '\t' && s[j] != '[' && s[j] != ':' && s[j] != '=' {
		j++
	}
	return s[i:j]
}
