package catalog

import "github.com/julianstephens/labcita/internal/models"

// DefaultLabs is the built-in lab list, also seeded by the initial migration.
var DefaultLabs = []models.Lab{
	{ID: "lab1", Name: "Laboratorio Central"},
	{ID: "lab2", Name: "Laboratorio Norte"},
	{ID: "lab3", Name: "Laboratorio Sur"},
}

// DefaultExams is the built-in exam offering per lab.
var DefaultExams = []models.Exam{
	{LabID: "lab1", Name: "Hemograma Completo"},
	{LabID: "lab1", Name: "Glucosa en Ayunas"},
	{LabID: "lab1", Name: "Perfil Lipídico"},
	{LabID: "lab1", Name: "Examen General de Orina"},
	{LabID: "lab2", Name: "Urocultivo"},
	{LabID: "lab2", Name: "Prueba de Tiroides (TSH)"},
	{LabID: "lab3", Name: "Hemoglobina Glicosilada"},
	{LabID: "lab3", Name: "Perfil Hepático"},
}

// Default returns a catalog of the built-in labs and exams.
func Default() *Catalog {
	c, err := New(DefaultLabs, DefaultExams)
	if err != nil {
		panic(err)
	}
	return c
}
