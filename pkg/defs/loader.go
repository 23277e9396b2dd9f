// Package defs loads declarative resource definitions from YAML.
//
// A definitions document lists every resource kind in its own section. Each
// entry is decoded strictly (unknown fields are rejected) and then run
// through the resource constructors, so a loaded definition is always a
// fully validated resource.
//
// SECURITY: File loading enforces a size limit to prevent DoS via large
// files. Input validation is performed at the boundary.
package defs

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/featstate/featstate/pkg/registry"
	"github.com/featstate/featstate/pkg/resources"
)

// MaxDefsFileSizeBytes is the maximum size of a definitions file (1MB).
const MaxDefsFileSizeBytes = 1 * 1024 * 1024

// Errors.
var (
	ErrDefsNotFound      = errors.New("definitions file not found")
	ErrDefsTooLarge      = errors.New("definitions file exceeds maximum size")
	ErrInvalidYAML       = errors.New("invalid YAML syntax")
	ErrUnknownConfigType = errors.New("unknown provider config type")
	ErrUnknownDefinition = errors.New("source needs exactly one of primary or transformation")
)

// Definitions is a declarative document describing resources to register.
type Definitions struct {
	Users        []UserDef        `yaml:"users"`
	Providers    []ProviderDef    `yaml:"providers"`
	Entities     []EntityDef      `yaml:"entities"`
	Sources      []SourceDef      `yaml:"sources"`
	Features     []FeatureDef     `yaml:"features"`
	Labels       []LabelDef       `yaml:"labels"`
	TrainingSets []TrainingSetDef `yaml:"training_sets"`
}

// UserDef declares a user.
type UserDef struct {
	Name string `yaml:"name"`
}

// ProviderDef declares a provider with a tagged connection config.
type ProviderDef struct {
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Function    string            `yaml:"function"`
	Team        string            `yaml:"team"`
	Config      ProviderConfigDef `yaml:"config"`
}

// ProviderConfigDef is the YAML shape of a provider config. Type selects the
// variant; only the fields belonging to that variant are read.
type ProviderConfigDef struct {
	Type         string `yaml:"type"`
	Host         string `yaml:"host,omitempty"`
	Port         int    `yaml:"port,omitempty"`
	Database     string `yaml:"database,omitempty"`
	User         string `yaml:"user,omitempty"`
	Password     string `yaml:"password,omitempty"`
	Account      string `yaml:"account,omitempty"`
	Organization string `yaml:"organization,omitempty"`
	Username     string `yaml:"username,omitempty"`
	Schema       string `yaml:"schema,omitempty"`
	DB           int    `yaml:"db,omitempty"`
}

// toConfig converts the tagged YAML shape into the closed config sum.
func (d ProviderConfigDef) toConfig() (resources.ProviderConfig, error) {
	switch d.Type {
	case "postgres":
		return resources.PostgresConfig{
			Host:     d.Host,
			Port:     d.Port,
			Database: d.Database,
			User:     d.User,
			Password: d.Password,
		}, nil
	case "snowflake":
		return resources.SnowflakeConfig{
			Account:      d.Account,
			Organization: d.Organization,
			Database:     d.Database,
			Username:     d.Username,
			Password:     d.Password,
			Schema:       d.Schema,
		}, nil
	case "redis":
		return resources.RedisConfig{
			Host:     d.Host,
			Port:     d.Port,
			Password: d.Password,
			DB:       d.DB,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownConfigType, d.Type)
	}
}

// EntityDef declares an entity.
type EntityDef struct {
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
}

// SourceDef declares a source. Exactly one of Primary or Transformation must
// be set.
type SourceDef struct {
	Name           string             `yaml:"name"`
	Variant        string             `yaml:"variant"`
	Owner          string             `yaml:"owner"`
	Description    string             `yaml:"description"`
	Provider       string             `yaml:"provider"`
	Primary        *PrimaryDef        `yaml:"primary,omitempty"`
	Transformation *TransformationDef `yaml:"transformation,omitempty"`
}

// PrimaryDef declares pre-existing data in a SQL table.
type PrimaryDef struct {
	Table string `yaml:"table"`
}

// TransformationDef declares a SQL transformation over other sources.
type TransformationDef struct {
	Query   string           `yaml:"query"`
	Sources []NameVariantDef `yaml:"sources"`
}

// NameVariantDef references a variant-bearing resource.
type NameVariantDef struct {
	Name    string `yaml:"name"`
	Variant string `yaml:"variant"`
}

// FeatureDef declares a feature.
type FeatureDef struct {
	Name        string `yaml:"name"`
	Variant     string `yaml:"variant"`
	Description string `yaml:"description"`
	ValueType   string `yaml:"value_type"`
	Entity      string `yaml:"entity"`
	Owner       string `yaml:"owner"`
	Provider    string `yaml:"provider"`
}

// LabelDef declares a label.
type LabelDef struct {
	Name        string `yaml:"name"`
	Variant     string `yaml:"variant"`
	Description string `yaml:"description"`
	ValueType   string `yaml:"value_type"`
	Entity      string `yaml:"entity"`
	Owner       string `yaml:"owner"`
	Provider    string `yaml:"provider"`
}

// TrainingSetDef declares a training set.
type TrainingSetDef struct {
	Name        string           `yaml:"name"`
	Variant     string           `yaml:"variant"`
	Description string           `yaml:"description"`
	Owner       string           `yaml:"owner"`
	Provider    string           `yaml:"provider"`
	Label       NameVariantDef   `yaml:"label"`
	Features    []NameVariantDef `yaml:"features"`
}

// Load reads and decodes a definitions file.
func Load(path string) (*Definitions, error) {
	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrDefsNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat definitions file: %w", err)
	}

	// SECURITY: Check file size before reading to prevent DoS.
	if info.Size() > MaxDefsFileSizeBytes {
		return nil, fmt.Errorf("%w: %s (%d bytes, max %d)",
			ErrDefsTooLarge, path, info.Size(), MaxDefsFileSizeBytes)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open definitions file: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, MaxDefsFileSizeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read definitions file: %w", err)
	}

	return Decode(data)
}

// Decode strictly decodes a definitions document. Unknown fields are
// rejected.
func Decode(data []byte) (*Definitions, error) {
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	var defs Definitions
	if err := dec.Decode(&defs); err != nil {
		if errors.Is(err, io.EOF) {
			return &Definitions{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidYAML, err)
	}
	return &defs, nil
}

// Resources constructs every declared resource in document order. The first
// construction failure aborts the conversion.
func (d *Definitions) Resources() ([]resources.Resource, error) {
	list := make([]resources.Resource, 0,
		len(d.Users)+len(d.Providers)+len(d.Entities)+len(d.Sources)+
			len(d.Features)+len(d.Labels)+len(d.TrainingSets))

	for _, def := range d.Users {
		u, err := resources.NewUser(resources.User{Name: def.Name})
		if err != nil {
			return nil, err
		}
		list = append(list, u)
	}

	for _, def := range d.Providers {
		config, err := def.Config.toConfig()
		if err != nil {
			return nil, err
		}
		p, err := resources.NewProvider(resources.Provider{
			Name:        def.Name,
			Description: def.Description,
			Function:    def.Function,
			Team:        def.Team,
			Config:      config,
		})
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}

	for _, def := range d.Entities {
		e, err := resources.NewEntity(resources.Entity{
			Name:        def.Name,
			Description: def.Description,
		})
		if err != nil {
			return nil, err
		}
		list = append(list, e)
	}

	for _, def := range d.Sources {
		definition, err := def.toDefinition()
		if err != nil {
			return nil, err
		}
		s, err := resources.NewSource(resources.Source{
			Name:        def.Name,
			Variant:     def.Variant,
			Definition:  definition,
			Owner:       def.Owner,
			Description: def.Description,
			Provider:    def.Provider,
		})
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}

	for _, def := range d.Features {
		f, err := resources.NewFeature(resources.Feature{
			Name:        def.Name,
			Variant:     def.Variant,
			Description: def.Description,
			ValueType:   def.ValueType,
			Entity:      def.Entity,
			Owner:       def.Owner,
			Provider:    def.Provider,
		})
		if err != nil {
			return nil, err
		}
		list = append(list, f)
	}

	for _, def := range d.Labels {
		l, err := resources.NewLabel(resources.Label{
			Name:        def.Name,
			Variant:     def.Variant,
			Description: def.Description,
			ValueType:   def.ValueType,
			Entity:      def.Entity,
			Owner:       def.Owner,
			Provider:    def.Provider,
		})
		if err != nil {
			return nil, err
		}
		list = append(list, l)
	}

	for _, def := range d.TrainingSets {
		ts, err := resources.NewTrainingSet(resources.TrainingSet{
			Name:        def.Name,
			Variant:     def.Variant,
			Description: def.Description,
			Owner:       def.Owner,
			Provider:    def.Provider,
			Label:       resources.NameVariant{Name: def.Label.Name, Variant: def.Label.Variant},
			Features:    toNameVariants(def.Features),
		})
		if err != nil {
			return nil, err
		}
		list = append(list, ts)
	}

	return list, nil
}

// toDefinition converts the YAML source shape into the closed definition sum.
func (d SourceDef) toDefinition() (resources.SourceDefinition, error) {
	switch {
	case d.Primary != nil && d.Transformation == nil:
		return resources.PrimaryData{
			Location: resources.SQLTable{Name: d.Primary.Table},
		}, nil
	case d.Transformation != nil && d.Primary == nil:
		return resources.SQLTransformation{
			Query:   d.Transformation.Query,
			Sources: toNameVariants(d.Transformation.Sources),
		}, nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownDefinition, d.Name)
	}
}

func toNameVariants(defs []NameVariantDef) []resources.NameVariant {
	if len(defs) == 0 {
		return nil
	}
	pairs := make([]resources.NameVariant, len(defs))
	for i, def := range defs {
		pairs[i] = resources.NameVariant{Name: def.Name, Variant: def.Variant}
	}
	return pairs
}

// Populate constructs every declared resource and adds it to the registry.
func (d *Definitions) Populate(state *registry.State) error {
	list, err := d.Resources()
	if err != nil {
		return err
	}
	for _, r := range list {
		if err := state.Add(r); err != nil {
			return err
		}
	}
	return nil
}
