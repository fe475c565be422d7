// Package render turns a workboard's workflow template and a job's inputs into the
// document submitted to a compute server.
package render

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/voidshard/easel/pkg/errors"
	"github.com/voidshard/easel/pkg/seed"
	"github.com/voidshard/easel/pkg/structs"
)

const (
	DefaultWidth  = 512
	DefaultHeight = 512

	// seedKey is the object key whose numeric value always tracks the resolved seed.
	seedKey = "seed"
)

// Built in tokens, always present in the replacement table.
var (
	TokenPrompt            = structs.Placeholder("prompt")
	TokenNegativePrompt    = structs.Placeholder("negative_prompt")
	TokenModel             = structs.Placeholder("model")
	TokenSize              = structs.Placeholder("size")
	TokenWidth             = structs.Placeholder("width")
	TokenHeight            = structs.Placeholder("height")
	TokenSeed              = structs.Placeholder("seed")
	TokenSampler           = structs.Placeholder("sampler")
	TokenScheduler         = structs.Placeholder("scheduler")
	TokenStyle             = structs.Placeholder("style")
	TokenUpscaleMethod     = structs.Placeholder("upscale_method")
	TokenReferenceMethod   = structs.Placeholder("reference_method")
	TokenReferenceStrength = structs.Placeholder("reference_strength")
	TokenReferenceImage    = structs.Placeholder("reference_image")
)

// ReferenceImageField is the upload key used for the first of a job's reference images.
const ReferenceImageField = "reference_image"

var sizePattern = regexp.MustCompile(`^\s*(\d+)\s*[xX×*]\s*(\d+)\s*$`)

// Result is the outcome of rendering a job.
type Result struct {
	// Document is the rendered workflow, ready to submit.
	Document []byte

	// Seed is how the seed was resolved; Seed.Seed is written into every seed site.
	Seed seed.Resolution

	Width  int
	Height int

	// Params is the generation parameter snapshot recorded on persisted media.
	Params structs.GenerationParams
}

// Renderer renders workflow templates. Given a fixed seed it is a pure function of its inputs.
type Renderer struct {
	seeds *seed.Resolver
}

// New returns a renderer drawing random seeds from the given resolver.
func New(seeds *seed.Resolver) *Renderer {
	if seeds == nil {
		seeds = seed.New()
	}
	return &Renderer{seeds: seeds}
}

// Render resolves the job's seed and substitutes the job's inputs into the workboard template.
//
// uploads maps image field names to filenames already uploaded to the compute server.
func (r *Renderer) Render(ref *structs.WorkboardRef, in *structs.JobInput, uploads map[string]string) (*Result, error) {
	if ref == nil || in == nil {
		return nil, fmt.Errorf("%w: workboard and input required", errors.ErrInvalidArg)
	}
	res := r.seeds.Resolve(in.Seed, in.UseRandomSeed)
	return renderWithSeed(ref, in, uploads, res)
}

func renderWithSeed(ref *structs.WorkboardRef, in *structs.JobInput, uploads map[string]string, res seed.Resolution) (*Result, error) {
	tbl, w, h := buildTable(ref, in, uploads, res.Seed)

	doc, err := apply(ref.WorkflowTemplate, tbl, res.Seed)
	if err != nil {
		return nil, err
	}

	return &Result{
		Document: doc,
		Seed:     res,
		Width:    w,
		Height:   h,
		Params: structs.GenerationParams{
			Prompt:         in.Prompt,
			NegativePrompt: in.NegativePrompt,
			Seed:           res.Seed,
			Model:          tbl.text(TokenModel),
			Size:           fmt.Sprintf("%dx%d", w, h),
			Sampler:        tbl.text(TokenSampler),
			Scheduler:      tbl.text(TokenScheduler),
			WorkboardID:    ref.ID,
			WorkboardName:  ref.Name,
		},
	}, nil
}

// Validate checks that a template can be rendered, using every field's default value.
func Validate(ref *structs.WorkboardRef) error {
	if strings.TrimSpace(ref.WorkflowTemplate) == "" {
		return fmt.Errorf("%w: workflow template is empty", errors.ErrInvalidFormat)
	}
	uploads := map[string]string{}
	for _, f := range ref.AdditionalInputFields {
		if f.Name == "" {
			return fmt.Errorf("%w: additional input field without a name", errors.ErrInvalidFormat)
		}
		if f.Type.IsImage() {
			uploads[f.Name] = f.Name + ".png"
		}
	}
	_, err := renderWithSeed(ref, &structs.JobInput{}, uploads, seed.Resolution{Source: seed.SourceRandom})
	if err != nil {
		return fmt.Errorf("%w: %w", errors.ErrInvalidFormat, err)
	}
	return nil
}

// ParseSize reads a "WxH" string, returning the defaults if it is malformed.
func ParseSize(s string) (int, int, bool) {
	m := sizePattern.FindStringSubmatch(s)
	if m == nil {
		return DefaultWidth, DefaultHeight, false
	}
	w, errw := strconv.Atoi(m[1])
	h, errh := strconv.Atoi(m[2])
	if errw != nil || errh != nil || w <= 0 || h <= 0 {
		return DefaultWidth, DefaultHeight, false
	}
	return w, h, true
}

// table maps tokens to their replacement values.
type table struct {
	values map[string]*Node

	// tokens ordered longest first so overlapping tokens substitute predictably
	tokens []string
}

func (t *table) set(token string, n *Node) {
	if token == "" {
		return
	}
	if _, ok := t.values[token]; !ok {
		t.tokens = append(t.tokens, token)
	}
	t.values[token] = n
}

func (t *table) text(token string) string {
	n, ok := t.values[token]
	if !ok {
		return ""
	}
	return n.String()
}

func (t *table) seal() {
	sort.SliceStable(t.tokens, func(i, j int) bool {
		if len(t.tokens[i]) != len(t.tokens[j]) {
			return len(t.tokens[i]) > len(t.tokens[j])
		}
		return t.tokens[i] < t.tokens[j]
	})
}

// choose returns the input if set, else the first option of the set.
func choose(in structs.InputValue, opts []structs.Option) string {
	if !in.IsEmpty() {
		return in.Literal()
	}
	if def, ok := structs.FirstOption(opts); ok {
		return def.Literal()
	}
	return ""
}

func buildTable(ref *structs.WorkboardRef, in *structs.JobInput, uploads map[string]string, resolved uint64) (*table, int, int) {
	tbl := &table{values: map[string]*Node{}}
	base := ref.BaseInputFields

	size := in.Size
	if size.IsEmpty() {
		size, _ = structs.FirstOption(base.Sizes)
	}
	w, h, ok := ParseSize(size.Literal())
	if !ok {
		// option values are sometimes opaque, the label often carries the dimensions
		w, h, _ = ParseSize(size.Label())
	}

	tbl.set(TokenPrompt, NewString(in.Prompt))
	tbl.set(TokenNegativePrompt, NewString(in.NegativePrompt))
	tbl.set(TokenModel, NewString(choose(in.Model, base.Models)))
	tbl.set(TokenSize, NewString(fmt.Sprintf("%dx%d", w, h)))
	tbl.set(TokenWidth, NewUint(uint64(w)))
	tbl.set(TokenHeight, NewUint(uint64(h)))
	tbl.set(TokenSeed, NewUint(resolved))
	tbl.set(TokenSampler, NewString(choose(in.Sampler, base.Samplers)))
	tbl.set(TokenScheduler, NewString(choose(in.Scheduler, base.Schedulers)))
	tbl.set(TokenStyle, NewString(choose(in.StylePreset, base.StylePresets)))
	tbl.set(TokenUpscaleMethod, NewString(choose(in.UpscaleMethod, base.UpscaleMethods)))

	var method structs.InputValue
	strength := 1.0
	if len(in.ReferenceImages) > 0 {
		method = in.ReferenceImages[0].Method
		if in.ReferenceImages[0].Strength > 0 {
			strength = in.ReferenceImages[0].Strength
		}
	}
	tbl.set(TokenReferenceMethod, NewString(choose(method, base.ReferenceMethods)))
	tbl.set(TokenReferenceStrength, NewFloat(strength))
	tbl.set(TokenReferenceImage, NewString(uploads[ReferenceImageField]))

	for _, f := range ref.AdditionalInputFields {
		value, ok := in.Param(f.Name)
		if !ok {
			value = f.DefaultValue
		}
		tbl.set(f.Token(), coerce(&f, value, uploads))
	}

	tbl.seal()
	return tbl, w, h
}

// coerce converts a field value to a node of the field's declared type.
func coerce(f *structs.InputField, v structs.InputValue, uploads map[string]string) *Node {
	switch f.Type {
	case structs.FieldNumber:
		if v.Kind() == structs.ValueNumber {
			return NewNumber(v.Literal())
		}
		if n, ok := v.Float(); ok {
			return NewFloat(n)
		}
		if n, ok := f.DefaultValue.Float(); ok {
			return NewFloat(n)
		}
		return NewNumber("0")
	case structs.FieldBoolean:
		return NewBool(v.Truthy())
	case structs.FieldImage, structs.FieldFile:
		return NewString(uploads[f.Name])
	default:
		return NewString(v.Literal())
	}
}

// apply renders template text with the table.
func apply(tmpl string, tbl *table, resolved uint64) ([]byte, error) {
	root, err := Parse([]byte(tmpl))
	if err != nil {
		root, err = Parse(substituteText(tmpl, tbl))
		if err != nil {
			return nil, errors.Permanent(fmt.Errorf("%w: template is not valid json after substitution: %w", errors.ErrRender, err))
		}
		root = walk(root, &table{values: map[string]*Node{}}, resolved)
		return Encode(root), nil
	}
	return Encode(walk(root, tbl, resolved)), nil
}

// walk substitutes tokens throughout the tree.
//
// A string that is exactly a token becomes the token's value, keeping its type. A string
// containing tokens has each replaced by the value's text; escaping happens when the tree is
// encoded. Any numeric "seed" member is set to the resolved seed.
func walk(n *Node, tbl *table, resolved uint64) *Node {
	switch n.Kind {
	case String:
		if rep, ok := tbl.values[n.Text]; ok {
			return rep.Clone()
		}
		n.Text = tbl.replacer(nil, false).Replace(n.Text)
	case Array:
		for i, item := range n.Items {
			n.Items[i] = walk(item, tbl, resolved)
		}
	case Object:
		for i, m := range n.Members {
			val := walk(m.Value, tbl, resolved)
			if m.Key == seedKey && val.Kind == Number {
				val = NewUint(resolved)
			}
			n.Members[i].Value = val
		}
	}
	return n
}

// replacer builds a single pass replacer over the table; matches are never re-substituted.
// With quoted set a token wrapped in quotes is swapped for the encoded value, keeping its type.
func (t *table) replacer(esc func(string) string, quoted bool) *strings.Replacer {
	pairs := make([]string, 0, len(t.tokens)*4)
	if quoted {
		for _, tok := range t.tokens {
			pairs = append(pairs, `"`+tok+`"`, string(Encode(t.values[tok])))
		}
	}
	for _, tok := range t.tokens {
		text := t.values[tok].String()
		if esc != nil {
			text = esc(text)
		}
		pairs = append(pairs, tok, text)
	}
	return strings.NewReplacer(pairs...)
}

// substituteText works on the raw template when it does not parse. Bare tokens receive the
// escaped text of their value.
func substituteText(tmpl string, tbl *table) []byte {
	return []byte(tbl.replacer(Escape, true).Replace(tmpl))
}
