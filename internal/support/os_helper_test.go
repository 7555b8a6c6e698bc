package support

import "testing"

func TestGetEnv(t *testing.T) {
	t.Setenv("IXFGUARD_TEST_ENV", "value")
	if got := GetEnv("IXFGUARD_TEST_ENV", "fallback"); got != "value" {
		t.Fatalf("GetEnv returned %s, want value", got)
	}

	if got := GetEnv("IXFGUARD_TEST_ENV_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnv returned %s, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("IXFGUARD_TEST_INT", "42")
	if got := GetEnvInt("IXFGUARD_TEST_INT", 7); got != 42 {
		t.Fatalf("GetEnvInt returned %d, want 42", got)
	}

	t.Setenv("IXFGUARD_TEST_INT_BAD", "forty-two")
	if got := GetEnvInt("IXFGUARD_TEST_INT_BAD", 7); got != 7 {
		t.Fatalf("GetEnvInt with invalid value returned %d, want 7", got)
	}
}

func TestHashBytesDeterministic(t *testing.T) {
	doc := []byte(`{"member_list": []}`)
	if got1, got2 := HashBytes(doc), HashBytes(append([]byte(nil), doc...)); got1 != got2 {
		t.Fatal("HashBytes returned different values for the same input")
	}

	if HashBytes(doc) == HashBytes([]byte(`{"member_list": null}`)) {
		t.Fatal("HashBytes returned same value for different inputs")
	}
}
