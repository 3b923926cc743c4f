package util

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type person struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

var expectedPeople = []person{
	{FirstName: "Ada", LastName: "Lovelace", Email: "ada@example.org"},
	{FirstName: "Alan", LastName: "Turing", Email: "alan@example.org"},
}

func TestBindJsonOrYaml_Yaml(t *testing.T) {
	var people []person
	err := BindJsonOrYaml(filepath.Join("testdata", "members.yaml"), &people)
	require.NoError(t, err)
	assert.Equal(t, expectedPeople, people)
}

func TestBindJsonOrYaml_Json(t *testing.T) {
	var people []person
	err := BindJsonOrYaml(filepath.Join("testdata", "members.json"), &people)
	require.NoError(t, err)
	assert.Equal(t, expectedPeople, people)
}

func TestBindJsonOrYaml_MissingFile(t *testing.T) {
	var people []person
	err := BindJsonOrYaml(filepath.Join("testdata", "nope.yaml"), &people)
	assert.ErrorContains(t, err, "failed opening file")
}

func TestBindJsonOrYaml_Malformed(t *testing.T) {
	var people []person
	err := BindJsonOrYaml(filepath.Join("testdata", "broken.yaml"), &people)
	assert.ErrorContains(t, err, "failed to parse file")
}
