//go:build darwin

package say

import (
	"reflect"
	"testing"
)

func TestSpeakArgs(t *testing.T) {
	got := speakArgs("hello world", "Samantha")
	want := []string{"-v", "Samantha", "hello world"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("speakArgs = %v, want %v", got, want)
	}
}

func TestSpeakArgsDefaultVoice(t *testing.T) {
	got := speakArgs("hello", "")
	want := []string{"hello"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("speakArgs = %v, want %v", got, want)
	}
}
