package geo

import (
	"errors"
	"math"
	"testing"
)

func TestDistanceZeroForSamePoint(t *testing.T) {
	points := []Coordinate{
		{Lat: 0, Lng: 0},
		{Lat: 18.5204, Lng: 73.8567},
		{Lat: -90, Lng: 0},
		{Lat: 90, Lng: 180},
	}
	for _, p := range points {
		if d := Distance(p, p); d != 0 {
			t.Errorf("Distance(%v, %v) = %v, want 0", p, p, d)
		}
	}
}

func TestDistanceSymmetric(t *testing.T) {
	pairs := [][2]Coordinate{
		{{Lat: 18.5204, Lng: 73.8567}, {Lat: 19.0760, Lng: 72.8777}},
		{{Lat: -33.8688, Lng: 151.2093}, {Lat: 51.5074, Lng: -0.1278}},
		{{Lat: 89.9, Lng: 10}, {Lat: -89.9, Lng: -170}},
	}
	for _, pair := range pairs {
		ab := Distance(pair[0], pair[1])
		ba := Distance(pair[1], pair[0])
		if ab != ba {
			t.Errorf("Distance not symmetric: %v vs %v", ab, ba)
		}
	}
}

func TestDistanceKnownValue(t *testing.T) {
	// Shaniwar Wada to Dagadusheth Halwai Ganapati, central Pune.
	a := Coordinate{Lat: 18.5204, Lng: 73.8567}
	b := Coordinate{Lat: 18.5164, Lng: 73.8560}
	d := Distance(a, b)
	if math.Abs(d-0.45) > 0.02 {
		t.Errorf("Distance = %v km, want ~0.45", d)
	}
}

func TestDistanceDateLineWraparound(t *testing.T) {
	// Two points straddling the antimeridian are ~222 km apart, not
	// most of the way around the planet.
	a := Coordinate{Lat: 0, Lng: 179}
	b := Coordinate{Lat: 0, Lng: -179}
	d := Distance(a, b)
	if math.Abs(d-222.4) > 1.0 {
		t.Errorf("Distance across date line = %v km, want ~222.4", d)
	}
}

func TestDistancePoleToPole(t *testing.T) {
	a := Coordinate{Lat: 90, Lng: 0}
	b := Coordinate{Lat: -90, Lng: 0}
	d := Distance(a, b)
	want := math.Pi * earthRadiusKm
	if math.Abs(d-want) > 1.0 {
		t.Errorf("pole-to-pole distance = %v, want ~%v", d, want)
	}
}

func TestDistanceMonotonicWithSeparation(t *testing.T) {
	origin := Coordinate{Lat: 18.5204, Lng: 73.8567}
	prev := 0.0
	for i := 1; i <= 10; i++ {
		p := Coordinate{Lat: origin.Lat, Lng: origin.Lng + float64(i)*0.5}
		d := Distance(origin, p)
		if d <= prev {
			t.Fatalf("distance not increasing at step %d: %v <= %v", i, d, prev)
		}
		prev = d
	}
}

func TestCoordinateValid(t *testing.T) {
	cases := []struct {
		c    Coordinate
		want bool
	}{
		{Coordinate{Lat: 0, Lng: 0}, true},
		{Coordinate{Lat: 90, Lng: 180}, true},
		{Coordinate{Lat: -90, Lng: -180}, true},
		{Coordinate{Lat: 90.1, Lng: 0}, false},
		{Coordinate{Lat: -91, Lng: 0}, false},
		{Coordinate{Lat: 0, Lng: 180.5}, false},
		{Coordinate{Lat: 0, Lng: -181}, false},
		{Coordinate{Lat: math.NaN(), Lng: 0}, false},
		{Coordinate{Lat: 0, Lng: math.NaN()}, false},
	}
	for _, tc := range cases {
		if got := tc.c.Valid(); got != tc.want {
			t.Errorf("Valid(%v) = %v, want %v", tc.c, got, tc.want)
		}
	}
}

func TestValidateReturnsSentinel(t *testing.T) {
	err := Coordinate{Lat: 91, Lng: 0}.Validate()
	if err == nil {
		t.Fatal("expected error for lat=91")
	}
	if !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("error %v does not wrap ErrInvalidCoordinate", err)
	}
	if got := (Coordinate{Lat: 10, Lng: 20}).Validate(); got != nil {
		t.Errorf("Validate of valid coordinate returned %v", got)
	}
}
