package canon

import "testing"

func TestMarshalSortsKeysAndFormatsNumbers(t *testing.T) {
	m := map[string]any{
		"name": "Charlie",
		"age":  float64(25),
		"d":    "placeholder",
	}
	got, err := Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"age":25,"d":"placeholder","name":"Charlie"}`
	if string(got) != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestMarshalNestedAndArrays(t *testing.T) {
	m := map[string]any{
		"z": []any{"b", "a"},
		"a": map[string]any{"y": float64(1), "x": float64(2)},
	}
	got, err := Marshal(m)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"a":{"x":2,"y":1},"z":["b","a"]}`
	if string(got) != want {
		t.Fatalf("got %s want %s", got, want)
	}
}

func TestDecodeThenMarshalRoundTrip(t *testing.T) {
	in := []byte(`{"b":1,"a":[1,2,3],"c":{"y":true,"x":null}}`)
	v, err := Decode(in)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	out, err := Marshal(v)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	want := `{"a":[1,2,3],"b":1,"c":{"x":null,"y":true}}`
	if string(out) != want {
		t.Fatalf("got %s want %s", out, want)
	}
}
