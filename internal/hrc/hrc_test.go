package hrc

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

const sample = `:HEADER_BLOCK 2
:SKELETON n_cloud_sk
:BONES 2

hip
root
-1.90288
1 AAAA

knee
Hip
-4.72502
0
`

func TestParse(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	if s.BlockNumber != 2 || s.Name != "n_cloud_sk" || s.BoneCount != 2 {
		t.Errorf("header = %d %q %d", s.BlockNumber, s.Name, s.BoneCount)
	}
	if len(s.Bones) != 2 {
		t.Fatalf("parsed %d bones; expected 2", len(s.Bones))
	}

	hip := s.Bones[0]
	if hip.Name != "hip" || hip.Parent != "root" || hip.Length != -1.90288 {
		t.Errorf("hip = %+v", hip)
	}
	if hip.ResourceCount != 1 || !reflect.DeepEqual(hip.Resources, []string{"AAAA"}) {
		t.Errorf("hip resources = %d %v", hip.ResourceCount, hip.Resources)
	}

	knee := s.Bones[1]
	if knee.ResourceCount != 0 || len(knee.Resources) != 0 {
		t.Errorf("knee resources = %d %v", knee.ResourceCount, knee.Resources)
	}
}

func TestParentIndex(t *testing.T) {
	s, err := Parse([]byte(sample))
	if err != nil {
		t.Fatal(err)
	}

	// "root" marks the hierarchy root; "Hip" matches bone 0
	// case-insensitively.
	if got := s.ParentIndex(0); got != -1 {
		t.Errorf("ParentIndex(hip) = %d; expected -1", got)
	}
	if got := s.ParentIndex(1); got != 0 {
		t.Errorf("ParentIndex(knee) = %d; expected 0", got)
	}
}

func TestParentIndexDangling(t *testing.T) {
	src := strings.Replace(sample, "Hip", "elbow", 1)
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if got := s.ParentIndex(1); got != -1 {
		t.Errorf("dangling parent resolved to %d; expected -1", got)
	}
}

func TestMissingMarkers(t *testing.T) {
	cases := []struct {
		name   string
		src    string
		marker string
	}{
		{"no header block", ":SKELETON x\n:BONES 0\n", ":HEADER_BLOCK"},
		{"no skeleton", ":HEADER_BLOCK 2\n:BONES 0\n", ":SKELETON"},
		{"no bone count", ":HEADER_BLOCK 2\n:SKELETON x\nhip\n", ":BONES"},
		{"empty input", "", ":HEADER_BLOCK"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.src))
			if !errors.Is(err, ErrInvalidFormat) {
				t.Fatalf("got %v; expected ErrInvalidFormat", err)
			}
			if !strings.Contains(err.Error(), tc.marker) {
				t.Errorf("error %q does not name expected marker %s", err, tc.marker)
			}
		})
	}
}

func TestNonNumericCount(t *testing.T) {
	src := strings.Replace(sample, ":BONES 2", ":BONES two", 1)
	if _, err := Parse([]byte(src)); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("got %v; expected ErrMalformedHeader", err)
	}
}

func TestNonNumericLength(t *testing.T) {
	src := strings.Replace(sample, "-1.90288", "short", 1)
	if _, err := Parse([]byte(src)); !errors.Is(err, ErrMalformedHeader) {
		t.Errorf("got %v; expected ErrMalformedHeader", err)
	}
}

func TestTruncatedBones(t *testing.T) {
	idx := strings.Index(sample, "knee")
	src := sample[:idx+len("knee")] // second bone stops after its name
	if _, err := Parse([]byte(src)); !errors.Is(err, ErrTruncated) {
		t.Errorf("got %v; expected ErrTruncated", err)
	}
}

func TestCommentsAndBlankLinesSkipped(t *testing.T) {
	src := "# exported skeleton\n\n" + strings.Replace(sample, "hip\n", "# bone 0\nhip\n", 1)
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	if len(s.Bones) != 2 || s.Bones[0].Name != "hip" {
		t.Errorf("comments disturbed parsing: %+v", s.Bones)
	}
}

func TestResourceCountNotCrossChecked(t *testing.T) {
	src := strings.Replace(sample, "1 AAAA", "3 AAAA AAAB", 1)
	s, err := Parse([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	b := s.Bones[0]
	if b.ResourceCount != 3 || !reflect.DeepEqual(b.Resources, []string{"AAAA", "AAAB"}) {
		t.Errorf("bone = %d %v; declared count must not clip the list", b.ResourceCount, b.Resources)
	}
}
