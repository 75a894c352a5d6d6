package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	pgvector "github.com/pgvector/pgvector-go"
	"gorm.io/gorm"

	"github.com/pageza/recipe-catalog/backend/internal/recommend"
)

// EmbeddingDimensions is the width of the recipe search embedding.
const EmbeddingDimensions = 3

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(a)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return fmt.Errorf("unsupported JSONBStringArray source %T", value)
	}

	if len(bytes) == 0 {
		*a = JSONBStringArray{}
		return nil
	}
	return json.Unmarshal(bytes, a)
}

// SplitList turns a legacy comma-joined list into trimmed, non-empty entries.
// Import paths call it once so the rest of the system only sees sequences.
func SplitList(joined string) JSONBStringArray {
	out := JSONBStringArray{}
	for _, part := range strings.Split(joined, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

type Recipe struct {
	ID           uuid.UUID        `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt    time.Time        `json:"created_at"`
	UpdatedAt    time.Time        `json:"updated_at"`
	DeletedAt    gorm.DeletedAt   `gorm:"index" json:"-"`
	Name         string           `gorm:"size:255;not null" json:"name"`
	Description  string           `gorm:"type:text" json:"description"`
	Cuisine      string           `gorm:"size:50;index" json:"cuisine"`
	Category     string           `gorm:"size:50;index" json:"category"`
	ImageURL     string           `gorm:"size:255" json:"image_url"`
	Tags         JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"tags"`
	Ingredients  JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	Instructions JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"instructions"`
	Calories     float64          `gorm:"type:float" json:"calories"`
	Protein      float64          `gorm:"type:float" json:"protein"`
	Carbs        float64          `gorm:"type:float" json:"carbs"`
	Fat          float64          `gorm:"type:float" json:"fat"`
	Embedding    pgvector.Vector  `gorm:"type:vector(3)" json:"-"`
	UserID       uuid.UUID        `gorm:"type:uuid" json:"user_id"`
}

// BeforeCreate assigns an ID when the caller did not supply one.
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}

// BeforeSave keeps the search embedding in step with the searchable text.
func (r *Recipe) BeforeSave(tx *gorm.DB) error {
	r.Embedding = Embed(r.Name + " " + r.Description + " " + strings.Join(r.Ingredients, " "))
	return nil
}

// ToEngine converts a stored recipe into the similarity engine's input.
func (r *Recipe) ToEngine() recommend.Recipe {
	return recommend.Recipe{
		ID:          r.ID.String(),
		Name:        r.Name,
		Cuisine:     r.Cuisine,
		Category:    r.Category,
		Tags:        []string(r.Tags),
		Ingredients: []string(r.Ingredients),
	}
}

// Embed returns a small deterministic embedding for text.
// It counts the total length, vowels and consonants.
func Embed(text string) pgvector.Vector {
	text = strings.ToLower(text)
	var vowels, consonants float32
	for _, r := range text {
		if strings.ContainsRune("aeiou", r) {
			vowels++
		} else if r >= 'a' && r <= 'z' {
			consonants++
		}
	}
	length := float32(len(text))
	return pgvector.NewVector([]float32{length, vowels, consonants})
}
