package cinema

import (
	"fmt"

	"github.com/ssargent/cinedb/pkg/serial"
)

// CinemaClass is the seating class of a cinema hall.
type CinemaClass string

const (
	ClassStandard CinemaClass = "standard"
	ClassGold     CinemaClass = "gold"
	ClassPlatinum CinemaClass = "platinum"
)

// Cinema is a single hall within a cineplex.
type Cinema struct {
	Code  string      `json:"code"`
	Class CinemaClass `json:"class"`
	Seats int         `json:"seats"`
}

func (c *Cinema) Validate() error {
	if c.Code == "" {
		return &ValidationError{"cinema", "code is required"}
	}
	switch c.Class {
	case ClassStandard, ClassGold, ClassPlatinum:
	default:
		return &ValidationError{"cinema", fmt.Sprintf("unknown class %q", c.Class)}
	}
	if c.Seats <= 0 {
		return &ValidationError{"cinema", "seats must be positive"}
	}
	return checkText("cinema", c.Code)
}

func (c *Cinema) FieldString() string {
	class := string(c.Class)
	return serial.Join(
		serial.EncodeString(&c.Code, "code"),
		serial.EncodeString(&class, "class"),
		serial.EncodeInt(c.Seats, "seats"),
	)
}

func (c *Cinema) FromFieldString(s string) error {
	fr, err := newFieldReader(s)
	if err != nil {
		return err
	}
	c.Code = fr.text("code")
	c.Class = CinemaClass(fr.text("class"))
	c.Seats = fr.int("seats")
	return fr.err
}

// Cineplex is a venue made up of several cinemas.
type Cineplex struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Location *string   `json:"location,omitempty"`
	Cinemas  []*Cinema `json:"cinemas"`
}

func (c *Cineplex) Key() string       { return c.ID }
func (c *Cineplex) SetKey(key string) { c.ID = key }

// Cinema returns the hall with the given code, or nil.
func (c *Cineplex) Cinema(code string) *Cinema {
	for _, hall := range c.Cinemas {
		if hall != nil && hall.Code == code {
			return hall
		}
	}
	return nil
}

func (c *Cineplex) Validate() error {
	if c.Name == "" {
		return &ValidationError{"cineplex", "name is required"}
	}
	if err := checkText("cineplex", c.Name); err != nil {
		return err
	}
	if c.Location != nil {
		if err := checkText("cineplex", *c.Location); err != nil {
			return err
		}
	}
	seen := make(map[string]bool)
	for _, hall := range c.Cinemas {
		if hall == nil {
			continue
		}
		if err := hall.Validate(); err != nil {
			return err
		}
		if seen[hall.Code] {
			return &ValidationError{"cineplex", fmt.Sprintf("duplicate cinema code %q", hall.Code)}
		}
		seen[hall.Code] = true
	}
	return nil
}

func (c *Cineplex) FieldString() string {
	return serial.Join(
		serial.EncodeString(&c.ID, "id"),
		serial.EncodeString(&c.Name, "name"),
		serial.EncodeString(c.Location, "location"),
		serial.EncodeList(c.Cinemas, "cinemas"),
	)
}

func (c *Cineplex) FromFieldString(s string) error {
	fr, err := newFieldReader(s)
	if err != nil {
		return err
	}
	c.ID = fr.text("id")
	c.Name = fr.text("name")
	c.Location = fr.nullable("location")
	c.Cinemas = readList[Cinema](fr, "cinemas")
	return fr.err
}
