package repository

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/google/uuid"
)

//go:embed defaults.toml
var defaultsTOML string

// DefaultXPToNext is the first level threshold of a fresh skill.
const DefaultXPToNext = 500

// Quote is one entry of the quote library.
type Quote struct {
	Text     string `toml:"text"`
	Author   string `toml:"author"`
	Personal bool   `toml:"personal"`
}

// Defaults is the seed data returned for keys that were never written.
type Defaults struct {
	Habits []Habit
	Skills []Skill
	Quotes []Quote
}

type defaultsFile struct {
	Habit []struct {
		Text string `toml:"text"`
	} `toml:"habit"`
	Skill []struct {
		Name     string `toml:"name"`
		Level    int    `toml:"level"`
		XPToNext int    `toml:"xp_to_next"`
	} `toml:"skill"`
	Quote []Quote `toml:"quote"`
}

// LoadDefaults parses the seed file at path, or the built-in seeds when path
// is empty.
func LoadDefaults(path string) (Defaults, error) {
	src := defaultsTOML
	if strings.TrimSpace(path) != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Defaults{}, fmt.Errorf("read seeds: %w", err)
		}
		src = string(data)
	}
	return ParseDefaults(src)
}

// BuiltinDefaults returns the embedded seeds. The embedded file is part of
// the binary, so a parse failure is a programming error.
func BuiltinDefaults() Defaults {
	d, err := ParseDefaults(defaultsTOML)
	if err != nil {
		panic(fmt.Sprintf("built-in defaults: %v", err))
	}
	return d
}

// ParseDefaults decodes a seed document.
func ParseDefaults(src string) (Defaults, error) {
	var f defaultsFile
	if _, err := toml.Decode(src, &f); err != nil {
		return Defaults{}, fmt.Errorf("decode seeds: %w", err)
	}
	var d Defaults
	for _, h := range f.Habit {
		text := strings.TrimSpace(h.Text)
		if text == "" {
			continue
		}
		d.Habits = append(d.Habits, Habit{ID: seedID("habit", text), Text: text})
	}
	for _, s := range f.Skill {
		name := strings.TrimSpace(s.Name)
		if name == "" {
			continue
		}
		sk := Skill{ID: seedID("skill", name), Name: name, Level: s.Level, XPToNext: s.XPToNext}
		if sk.Level < 1 {
			sk.Level = 1
		}
		if sk.XPToNext <= 0 {
			sk.XPToNext = DefaultXPToNext
		}
		d.Skills = append(d.Skills, sk)
	}
	for _, q := range f.Quote {
		if strings.TrimSpace(q.Text) == "" {
			continue
		}
		d.Quotes = append(d.Quotes, q)
	}
	return d, nil
}

// seed ids are stable so an unsaved default can be addressed across reloads
func seedID(kind, name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(kind+":"+strings.ToLower(name))).String()
}
