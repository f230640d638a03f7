// Package catalog holds the pattern vocabulary the query pipeline runs
// on: verb and action-word patterns, field keywords, and the word lists
// that classify a target word into a collection. The catalog is loaded
// once at startup and is read-only afterwards, so it is safe to share
// across concurrent sessions.
package catalog

import (
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"

	"github.com/kirillkom/realty-assistant/internal/core/domain"
)

// FieldKind tags a canonical field name with the transform strategy it
// gets. The tag is assigned once at load time; the transformer switches
// on it instead of comparing field-name strings per query.
type FieldKind int

const (
	KindLiteral FieldKind = iota
	KindDescription
	KindAddress
	KindFullName
	KindMembership
	KindPrice
)

// DefaultActionGap bounds the filler between a recognized verb and a
// recognized action word, in characters. The original grammar used 20;
// it is a tunable, not a law.
const DefaultActionGap = 20

type rawCatalog struct {
	Verbs       string            `yaml:"rverbs"`
	ActionWords string            `yaml:"raction_words"`
	QuitVerbs   string            `yaml:"rquit_verbs"`
	FieldWords  map[string]string `yaml:"field_words"`
	GetVerbs    []string          `yaml:"get_verbs"`
	InsertVerbs []string          `yaml:"insert_verbs"`
	Realty      []string          `yaml:"realty"`
	Worker      []string          `yaml:"worker"`
	Request     []string          `yaml:"request"`

	// Vocabulary for the in-process normalizer. Optional.
	StopWords []string          `yaml:"stop_words"`
	Lemmas    map[string]string `yaml:"lemmas"`
}

// Catalog is the compiled, immutable pattern vocabulary.
type Catalog struct {
	action *regexp.Regexp
	quit   *regexp.Regexp

	fieldWords map[string]string
	fieldKinds map[string]FieldKind

	getVerbs    map[string]struct{}
	insertVerbs map[string]struct{}
	collections map[domain.Collection]map[string]struct{}

	stopWords []string
	lemmas    map[string]string
}

// Load reads and compiles a catalog file. Any missing or malformed key
// is an error; callers treat that as fatal at startup.
func Load(path string, actionGap int) (*Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read catalog %s: %w", path, err)
	}
	return Parse(data, actionGap)
}

// Parse compiles a catalog from raw YAML bytes.
func Parse(data []byte, actionGap int) (*Catalog, error) {
	var raw rawCatalog
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parse catalog yaml: %w", err)
	}
	return build(raw, actionGap)
}

func build(raw rawCatalog, actionGap int) (*Catalog, error) {
	if actionGap <= 0 {
		actionGap = DefaultActionGap
	}
	if raw.Verbs == "" || raw.ActionWords == "" || raw.QuitVerbs == "" {
		return nil, fmt.Errorf("catalog: rverbs, raction_words and rquit_verbs are required")
	}
	if len(raw.FieldWords) == 0 {
		return nil, fmt.Errorf("catalog: field_words is required")
	}
	if len(raw.GetVerbs) == 0 || len(raw.InsertVerbs) == 0 {
		return nil, fmt.Errorf("catalog: get_verbs and insert_verbs are required")
	}
	if len(raw.Realty) == 0 || len(raw.Worker) == 0 || len(raw.Request) == 0 {
		return nil, fmt.Errorf("catalog: realty, worker and request word lists are required")
	}

	// RE2's \w is ASCII-only. The filler class must admit Cyrillic
	// letters, so spell it out.
	gap := fmt.Sprintf(`[\p{L}\p{N}_\s]{0,%d}`, actionGap)
	action, err := regexp.Compile("(?:" + raw.Verbs + ")" + gap + "(?:" + raw.ActionWords + ")")
	if err != nil {
		return nil, fmt.Errorf("compile action pattern: %w", err)
	}
	quit, err := regexp.Compile(raw.QuitVerbs)
	if err != nil {
		return nil, fmt.Errorf("compile quit pattern: %w", err)
	}

	cat := &Catalog{
		action:      action,
		quit:        quit,
		fieldWords:  make(map[string]string, len(raw.FieldWords)),
		fieldKinds:  make(map[string]FieldKind),
		getVerbs:    wordSet(raw.GetVerbs),
		insertVerbs: wordSet(raw.InsertVerbs),
		collections: map[domain.Collection]map[string]struct{}{
			domain.CollectionAppartments: wordSet(raw.Realty),
			domain.CollectionWorkers:     wordSet(raw.Worker),
			domain.CollectionRequests:    wordSet(raw.Request),
		},
		stopWords: raw.StopWords,
		lemmas:    raw.Lemmas,
	}

	for keyword, canonical := range raw.FieldWords {
		if keyword == "" || canonical == "" {
			return nil, fmt.Errorf("catalog: empty field keyword mapping %q -> %q", keyword, canonical)
		}
		cat.fieldWords[keyword] = canonical
		cat.fieldKinds[canonical] = kindOf(canonical)
	}

	if err := cat.checkDisjointCollections(); err != nil {
		return nil, err
	}
	return cat, nil
}

// A collection-classifying word in two category sets would make intent
// resolution ambiguous; reject it at load instead of leaving it to luck.
func (c *Catalog) checkDisjointCollections() error {
	seen := make(map[string]domain.Collection)
	for collection, words := range c.collections {
		for word := range words {
			if prev, ok := seen[word]; ok {
				return fmt.Errorf("catalog: word %q classifies both %s and %s", word, prev, collection)
			}
			seen[word] = collection
		}
	}
	return nil
}

func kindOf(canonical string) FieldKind {
	switch canonical {
	case "description":
		return KindDescription
	case "address":
		return KindAddress
	case "fullname":
		return KindFullName
	case "timestamp", "level":
		return KindMembership
	case "price":
		return KindPrice
	default:
		return KindLiteral
	}
}

func wordSet(words []string) map[string]struct{} {
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// MatchAction returns the first verb..action-word span in the joined
// sentence, if any.
func (c *Catalog) MatchAction(joined string) (string, bool) {
	m := c.action.FindString(joined)
	return m, m != ""
}

// MatchQuit reports whether the joined sentence contains a quit verb.
func (c *Catalog) MatchQuit(joined string) bool {
	return c.quit.MatchString(joined)
}

// CanonicalField resolves a field keyword to its canonical field name.
func (c *Catalog) CanonicalField(word string) (string, bool) {
	canonical, ok := c.fieldWords[word]
	return canonical, ok
}

// FieldKindOf returns the transform tag for a canonical field name.
// Unknown names are literals.
func (c *Catalog) FieldKindOf(canonical string) FieldKind {
	if kind, ok := c.fieldKinds[canonical]; ok {
		return kind
	}
	return KindLiteral
}

// ClassifyTarget resolves an action target word to a collection.
func (c *Catalog) ClassifyTarget(word string) (domain.Collection, bool) {
	for collection, words := range c.collections {
		if _, ok := words[word]; ok {
			return collection, true
		}
	}
	return "", false
}

// ClassifyVerb resolves an action verb to an operation.
func (c *Catalog) ClassifyVerb(verb string) (domain.Operation, bool) {
	if _, ok := c.getVerbs[verb]; ok {
		return domain.OpSelect, true
	}
	if _, ok := c.insertVerbs[verb]; ok {
		return domain.OpInsert, true
	}
	return "", false
}

// StopWords returns the normalizer stop-word list bundled with the
// catalog file.
func (c *Catalog) StopWords() []string { return c.stopWords }

// Lemmas returns the normalizer lemma-exception table bundled with the
// catalog file.
func (c *Catalog) Lemmas() map[string]string { return c.lemmas }
