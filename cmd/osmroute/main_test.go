package main

import (
	"bytes"
	"io"
	"strings"
	"testing"

	"github.com/LdDl/osmroute"
	"github.com/pkg/errors"
)

func TestParsePair(t *testing.T) {
	x, y, err := parsePair(" 12.5, 40")
	if err != nil {
		t.Fatal(err)
	}
	if x != 12.5 || y != 40 {
		t.Errorf("Pair must be [%f,%f], but got [%f,%f]", 12.5, 40.0, x, y)
	}
	for _, bad := range []string{"12.5", "1,2,3", "a,1"} {
		if _, _, err := parsePair(bad); err == nil {
			t.Errorf("Pair '%s' must produce error", bad)
		}
	}
}

func TestAskCoordinates(t *testing.T) {
	input := strings.NewReader("10 20 130 40\n10 20 30 40\n")
	output := &bytes.Buffer{}
	coords, err := askCoordinates(input, output)
	if err != nil {
		t.Fatal(err)
	}
	correct := [4]float64{10, 20, 30, 40}
	if coords != correct {
		t.Errorf("Coordinates must be %v, but got %v", correct, coords)
	}
	if !strings.Contains(output.String(), "out of range") {
		t.Errorf("Out of range input must be reported, but got output:\n%s", output.String())
	}
}

func TestAskCoordinatesEOF(t *testing.T) {
	_, err := askCoordinates(strings.NewReader("10 20 30"), io.Discard)
	if err != io.ErrUnexpectedEOF {
		t.Errorf("Error must be %v, but got %v", io.ErrUnexpectedEOF, err)
	}
	_, err = askCoordinates(strings.NewReader("10 twenty 30 40"), io.Discard)
	if err == nil {
		t.Errorf("Non-numeric input must produce error")
	}
}

func TestPrepareCoordinates(t *testing.T) {
	coords, err := prepareCoordinates("0,0", "100,50", strings.NewReader(""), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	correct := [4]float64{0, 0, 100, 50}
	if coords != correct {
		t.Errorf("Coordinates must be %v, but got %v", correct, coords)
	}
	_, err = prepareCoordinates("0,0", "100,101", strings.NewReader(""), io.Discard)
	if !errors.Is(err, osmroute.ErrOutOfRange) {
		t.Errorf("Error must be %v, but got %v", osmroute.ErrOutOfRange, err)
	}
	// Falls back to interactive input when any of flags is empty
	coords, err = prepareCoordinates("0,0", "", strings.NewReader("1 2 3 4"), io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if coords != [4]float64{1, 2, 3, 4} {
		t.Errorf("Coordinates must be %v, but got %v", [4]float64{1, 2, 3, 4}, coords)
	}
}
