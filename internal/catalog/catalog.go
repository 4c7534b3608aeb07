// Package catalog provides the read-only lookup of labs and the exams each
// lab offers.
package catalog

import (
	"fmt"
	"strings"

	"github.com/julianstephens/labcita/internal/models"
)

// Source supplies catalog rows. storage.Provider satisfies it.
type Source interface {
	GetLabs() ([]models.Lab, error)
	GetExams() ([]models.Exam, error)
}

// Catalog is an immutable index of labs and their exams.
type Catalog struct {
	labs  []models.Lab
	exams map[string][]string
}

// New builds a catalog. Exams referencing an unknown lab are rejected.
func New(labs []models.Lab, exams []models.Exam) (*Catalog, error) {
	c := &Catalog{
		labs:  make([]models.Lab, 0, len(labs)),
		exams: make(map[string][]string, len(labs)),
	}
	for _, lab := range labs {
		if lab.ID == "" || lab.Name == "" {
			return nil, fmt.Errorf("lab must have an id and a name: %+v", lab)
		}
		if _, dup := c.exams[lab.ID]; dup {
			return nil, fmt.Errorf("duplicate lab id %q", lab.ID)
		}
		c.labs = append(c.labs, lab)
		c.exams[lab.ID] = []string{}
	}
	for _, exam := range exams {
		list, ok := c.exams[exam.LabID]
		if !ok {
			return nil, fmt.Errorf("exam %q references unknown lab %q", exam.Name, exam.LabID)
		}
		c.exams[exam.LabID] = append(list, exam.Name)
	}
	return c, nil
}

// Load builds a catalog from src.
func Load(src Source) (*Catalog, error) {
	labs, err := src.GetLabs()
	if err != nil {
		return nil, fmt.Errorf("failed to load labs: %w", err)
	}
	exams, err := src.GetExams()
	if err != nil {
		return nil, fmt.Errorf("failed to load exams: %w", err)
	}
	return New(labs, exams)
}

// Labs returns the labs in catalog order.
func (c *Catalog) Labs() []models.Lab {
	out := make([]models.Lab, len(c.labs))
	copy(out, c.labs)
	return out
}

// Lab looks a lab up by id.
func (c *Catalog) Lab(id string) (models.Lab, bool) {
	for _, lab := range c.labs {
		if lab.ID == id {
			return lab, true
		}
	}
	return models.Lab{}, false
}

// LabByName looks a lab up by its display name, ignoring case.
func (c *Catalog) LabByName(name string) (models.Lab, bool) {
	name = strings.TrimSpace(name)
	for _, lab := range c.labs {
		if strings.EqualFold(lab.Name, name) {
			return lab, true
		}
	}
	return models.Lab{}, false
}

// ResolveLab accepts either a lab id or a lab name.
func (c *Catalog) ResolveLab(ref string) (models.Lab, bool) {
	if lab, ok := c.Lab(ref); ok {
		return lab, true
	}
	return c.LabByName(ref)
}

// ExamsFor returns the exams offered by the lab, or nil for an unknown lab.
func (c *Catalog) ExamsFor(labID string) []string {
	list, ok := c.exams[labID]
	if !ok {
		return nil
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

// Offers reports whether the lab offers exam.
func (c *Catalog) Offers(labID, exam string) bool {
	for _, e := range c.exams[labID] {
		if e == exam {
			return true
		}
	}
	return false
}
