package app

import "fmt"

const (
	kindLine   = "line"
	kindBranch = "branch"
	kindAll    = "all"
)

func checkKind(kind string) error {
	switch kind {
	case kindLine, kindBranch, kindAll:
		return nil
	}
	return fmt.Errorf("unknown --kind %q (want line, branch or all)", kind)
}

func wantLine(kind string) bool   { return kind != kindBranch }
func wantBranch(kind string) bool { return kind != kindLine }
