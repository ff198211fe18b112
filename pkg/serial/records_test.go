package serial

import "time"

// place is a small record used across the package tests.
type place struct {
	Age  int
	City *string
}

func (p *place) FieldString() string {
	return Join(
		EncodeInt(p.Age, "age"),
		EncodeString(p.City, "city"),
	)
}

func (p *place) FromFieldString(s string) error {
	fields, err := Parse(s)
	if err != nil {
		return err
	}
	age, err := fields.Lookup("age")
	if err != nil {
		return err
	}
	if p.Age, err = DecodeInt(age); err != nil {
		return err
	}
	city, err := fields.Lookup("city")
	if err != nil {
		return err
	}
	p.City = DecodeString(city)
	return nil
}

// point has a single integer field x.
type point struct {
	X int
}

func (p *point) FieldString() string {
	return EncodeInt(p.X, "x")
}

func (p *point) FromFieldString(s string) error {
	fields, err := Parse(s)
	if err != nil {
		return err
	}
	x, err := fields.Lookup("x")
	if err != nil {
		return err
	}
	p.X, err = DecodeInt(x)
	return err
}

// event nests records, record lists and string lists.
type event struct {
	Title  *string
	At     time.Time
	Score  float64
	Where  *place
	Points []*point
	Tags   []string
}

func (e *event) FieldString() string {
	return Join(
		EncodeString(e.Title, "title"),
		EncodeTime(e.At, "at"),
		EncodeFloat(e.Score, "score"),
		EncodeObject(e.Where, "where"),
		EncodeList(e.Points, "points"),
		EncodeStringList(e.Tags, "tags"),
	)
}

func (e *event) FromFieldString(s string) error {
	fields, err := Parse(s)
	if err != nil {
		return err
	}
	raw := make(map[string]string)
	for _, name := range []string{"title", "at", "score", "where", "points", "tags"} {
		v, err := fields.Lookup(name)
		if err != nil {
			return err
		}
		raw[name] = v
	}

	e.Title = DecodeString(raw["title"])
	if e.At, err = DecodeTime(raw["at"]); err != nil {
		return err
	}
	if e.Score, err = DecodeFloat(raw["score"]); err != nil {
		return err
	}
	if e.Where, err = DecodeObject[place](raw["where"]); err != nil {
		return err
	}
	if e.Points, err = DecodeList[point](raw["points"]); err != nil {
		return err
	}
	e.Tags, err = DecodeStringList(raw["tags"])
	return err
}

// wrapper holds another record whose own fields contain nested content.
type wrapper struct {
	Inner *event
	Note  *string
}

func (w *wrapper) FieldString() string {
	return Join(
		EncodeObject(w.Inner, "inner"),
		EncodeString(w.Note, "note"),
	)
}

func (w *wrapper) FromFieldString(s string) error {
	fields, err := Parse(s)
	if err != nil {
		return err
	}
	inner, err := fields.Lookup("inner")
	if err != nil {
		return err
	}
	if w.Inner, err = DecodeObject[event](inner); err != nil {
		return err
	}
	note, err := fields.Lookup("note")
	if err != nil {
		return err
	}
	w.Note = DecodeString(note)
	return nil
}

func strPtr(s string) *string {
	return &s
}
