package ast

import "github.com/hadrian-reppas/zparse"

// Error codes raised while evaluating an Expr against a fragment map.
const (
	fragmentNotDefinedCode = zparse.SyntaxErrors + iota + 50
)
