package answerkey

import (
	"math/rand"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	k := New(map[int][]int{
		1: {2},
		2: {1, 3},
		3: {},
	})

	assert.Equal(t, 3, k.Questions())
	assert.Equal(t, 3, k.Options())

	assert.True(t, k.IsCorrect(1, 2))
	assert.False(t, k.IsCorrect(1, 1))
	assert.True(t, k.IsCorrect(2, 1))
	assert.True(t, k.IsCorrect(2, 3))
	assert.False(t, k.IsCorrect(99, 1))

	assert.True(t, k.HasCorrect(2))
	assert.False(t, k.HasCorrect(3))
	assert.False(t, k.HasCorrect(99))
}

func TestNew_IgnoresInvalidIndices(t *testing.T) {
	k := New(map[int][]int{
		0:  {1},
		-3: {2},
		1:  {0, -1, 2},
	})

	assert.Equal(t, 1, k.Questions())
	assert.Equal(t, []int{2}, k.Correct(1))
}

func TestKey_CorrectSorted(t *testing.T) {
	k := New(map[int][]int{1: {4, 1, 3}})
	assert.Equal(t, []int{1, 3, 4}, k.Correct(1))
	assert.Nil(t, k.Correct(2))
}

func TestKey_Validate(t *testing.T) {
	k := New(map[int][]int{1: {1}, 2: {3}})

	assert.NoError(t, k.Validate(2, 3))
	assert.NoError(t, k.Validate(2, 4))

	assert.ErrorIs(t, k.Validate(1, 3), ErrDimensionMismatch)  // fewer rows than questions
	assert.ErrorIs(t, k.Validate(5, 3), ErrDimensionMismatch)  // key does not cover all rows
	assert.ErrorIs(t, k.Validate(2, 2), ErrDimensionMismatch)  // option beyond grid
	assert.ErrorIs(t, k.Validate(0, 3), ErrDimensionMismatch)  // degenerate grid
	assert.ErrorIs(t, k.Validate(2, -1), ErrDimensionMismatch) // degenerate grid
}

func TestLoadJSON(t *testing.T) {
	in := `{
		"Q1": {"Subject_1": 1, "Subject_2": 0, "Subject_3": 0},
		"Q2": {"Subject_1": 0, "Subject_2": 1, "Subject_3": 1},
		"Q3": {"Subject_1": 0, "Subject_2": 0, "Subject_3": 0}
	}`

	k, err := LoadJSON(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, k.Questions())
	assert.Equal(t, []int{1}, k.Correct(1))
	assert.Equal(t, []int{2, 3}, k.Correct(2))
	assert.False(t, k.HasCorrect(3))
}

func TestLoadJSON_Invalid(t *testing.T) {
	_, err := LoadJSON(strings.NewReader("not json"))
	assert.Error(t, err)

	_, err = LoadJSON(strings.NewReader(`{"question one": {"Subject_1": 1}}`))
	assert.Error(t, err)

	_, err = LoadJSON(strings.NewReader(`{"Q1": {"column A": 1}}`))
	assert.Error(t, err)
}

func TestLoadCSV(t *testing.T) {
	in := "Question,Subject_1,Subject_2,Subject_3\n" +
		"Q1,1,0,0\n" +
		"Q2,0,1,1\n" +
		"Q3,0,0,0\n"

	k, err := LoadCSV(strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, 3, k.Questions())
	assert.Equal(t, []int{1}, k.Correct(1))
	assert.Equal(t, []int{2, 3}, k.Correct(2))
	assert.False(t, k.HasCorrect(3))
}

func TestLoadCSV_Invalid(t *testing.T) {
	_, err := LoadCSV(strings.NewReader("Question,Subject_1\n"))
	assert.Error(t, err, "header with no question rows")

	_, err = LoadCSV(strings.NewReader("Question,Subject_1\nbad label,1\n"))
	assert.Error(t, err)
}

func TestJSONRoundTrip(t *testing.T) {
	orig := New(map[int][]int{
		1: {2},
		2: {1, 3},
		3: {},
	})

	data, err := orig.MarshalJSON()
	require.NoError(t, err)

	back, err := LoadJSON(strings.NewReader(string(data)))
	require.NoError(t, err)

	assert.Equal(t, orig.Questions(), back.Questions())
	for q := 1; q <= orig.Questions(); q++ {
		assert.Equal(t, orig.Correct(q), back.Correct(q), "question %d", q)
	}
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.json")

	orig := New(map[int][]int{1: {1}, 2: {2}})
	require.NoError(t, orig.Save(path))

	back, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, back.Correct(1))
	assert.Equal(t, []int{2}, back.Correct(2))
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := filepath.Join(t.TempDir(), "key.yaml")
	require.NoError(t, os.WriteFile(path, []byte("rows: 20"), 0o644))

	_, err := Load(path)
	assert.ErrorContains(t, err, "unsupported key format")
}

func TestSample(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	k := Sample(20, 5, rng)

	assert.NoError(t, k.Validate(20, 5))
	assert.Equal(t, 20, k.Questions())
	assert.Equal(t, 5, k.Options())
}

func TestLabels(t *testing.T) {
	assert.Equal(t, "Q7", QuestionLabel(7))
	assert.Equal(t, "Subject_3", OptionLabel(3))
}
