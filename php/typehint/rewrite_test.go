package typehint

import (
	"strings"
	"testing"
)

func rewriteStr(t *testing.T, source string, config Config) string {
	t.Helper()
	out, _ := RewriteStandalone([]byte(source), "test.php", config)
	return out
}

func TestRewritePassthrough(t *testing.T) {
	sources := []string{
		"<?php\nfunction f(int $a): int { return $a; }\n",
		"<?php\n$x = 1;\necho $x;\n",
		"plain text, no php at all\n",
		"<?php\n// just a comment\nclass Empty2 {}\n",
		"<?php\n/**\n * No tags here.\n */\nfunction f($a) {}\n",
	}
	for _, src := range sources {
		out, edits := RewriteStandalone([]byte(src), "test.php", Config{Nullable: true})
		if out != src {
			t.Errorf("Rewrite(%q) = %q, want unchanged", src, out)
		}
		if len(edits) != 0 {
			t.Errorf("Rewrite(%q) edits = %d, want 0", src, len(edits))
		}
	}
}

func TestRewriteParamHint(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param int $a\n * @param string $b\n */\n" +
		"function f($a, $b) {}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "function f(int $a, string $b)") {
		t.Errorf("Rewrite param hints = %q, want int $a, string $b", out)
	}
}

func TestRewriteReturnHint(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @return float\n */\n" +
		"function f()\n{\n    return 1.0;\n}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "function f(): float\n{") {
		t.Errorf("Rewrite return hint = %q, want \"function f(): float\" on the signature line", out)
	}
}

func TestRewriteNullableParam(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param int|null $c\n */\n" +
		"function f($c) {}\n"

	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "function f(?int $c)") {
		t.Errorf("nullable mode = %q, want ?int $c", out)
	}

	out = rewriteStr(t, src, Config{Nullable: false})
	if !strings.Contains(out, "function f(int $c = null)") {
		t.Errorf("fallback mode = %q, want int $c = null", out)
	}
}

func TestRewriteNullDefaultBeforeSpace(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param int|null $c\n * @param int $d\n */\n" +
		"function f($c , $d ) {}\n"

	// The default suffix goes in front of whitespace already emitted
	// before the comma or closing parenthesis.
	out := rewriteStr(t, src, Config{Nullable: false})
	if !strings.Contains(out, "function f(int $c = null , int $d )") {
		t.Errorf("fallback mode = %q, want int $c = null , int $d ", out)
	}

	src = "<?php\n" +
		"/**\n * @param int|null $c\n */\n" +
		"function g($c ) {}\n"
	out = rewriteStr(t, src, Config{Nullable: false})
	if !strings.Contains(out, "function g(int $c = null )") {
		t.Errorf("fallback mode = %q, want int $c = null )", out)
	}
}

func TestRewriteNullableReturn(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @return int|null\n */\n" +
		"function f() {}\n"

	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "function f(): ?int") {
		t.Errorf("nullable mode = %q, want : ?int", out)
	}

	// Without the ?T syntax a nullable return cannot be declared.
	out = rewriteStr(t, src, Config{Nullable: false})
	if out != src {
		t.Errorf("fallback mode = %q, want unchanged", out)
	}
}

func TestRewriteExplicitTypeWins(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param string $a\n * @return string\n */\n" +
		"function f(int $a): int { return $a; }\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if out != src {
		t.Errorf("Rewrite with explicit types = %q, want unchanged", out)
	}
}

func TestRewriteKeepsOriginalDefault(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param int|null $c\n */\n" +
		"function f($c = 5) {}\n"
	out := rewriteStr(t, src, Config{Nullable: false})
	if !strings.Contains(out, "function f(int $c = 5)") {
		t.Errorf("Rewrite with default = %q, want int $c = 5", out)
	}
}

func TestRewriteAmbiguousSkipped(t *testing.T) {
	sources := []string{
		"<?php\n/**\n * @param int|string $x\n */\nfunction f($x) {}\n",
		"<?php\n/**\n * @return int\n * @return string\n */\nfunction f() {}\n",
		"<?php\n/**\n * @param int|string|null $x\n */\nfunction f($x) {}\n",
	}
	for _, src := range sources {
		out := rewriteStr(t, src, Config{Nullable: true})
		if out != src {
			t.Errorf("Rewrite(%q) = %q, want unchanged", src, out)
		}
	}
}

func TestRewriteAliases(t *testing.T) {
	src := "<?php\n" +
		"/**\n" +
		" * @param integer $a\n" +
		" * @param boolean $b\n" +
		" * @param double $c\n" +
		" * @param callback $d\n" +
		" */\n" +
		"function f($a, $b, $c, $d) {}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "function f(int $a, bool $b, float $c, callable $d)") {
		t.Errorf("Rewrite aliases = %q, want int, bool, float, callable", out)
	}
}

func TestRewriteScalarWhitelist(t *testing.T) {
	src := "<?php\n" +
		"/**\n" +
		" * @param mixed $a\n" +
		" * @param resource $b\n" +
		" * @param datetime $c\n" +
		" */\n" +
		"function f($a, $b, $c) {}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if out != src {
		t.Errorf("Rewrite pseudo-types = %q, want unchanged", out)
	}
}

func TestRewriteClassNameHint(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param \\DateTime $when\n * @return \\Acme\\Result\n */\n" +
		"function f($when) {}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "function f(\\DateTime $when): \\Acme\\Result") {
		t.Errorf("Rewrite class hints = %q, want \\DateTime and \\Acme\\Result", out)
	}
}

func TestRewriteArrayType(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param string[] $names\n * @return int[]\n */\n" +
		"function f($names) {}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "function f(array $names): array") {
		t.Errorf("Rewrite array hints = %q, want array for both", out)
	}
}

func TestRewriteByRefAndVariadic(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param int $x\n * @param string $rest\n */\n" +
		"function f(&$x, ...$rest) {}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "function f(int &$x, string ...$rest)") {
		t.Errorf("Rewrite markers = %q, want type in front of & and ...", out)
	}
}

func TestRewriteMethodInClass(t *testing.T) {
	src := "<?php\nnamespace Acme;\n\n" +
		"class Calculator\n{\n" +
		"    /**\n     * @param int $a\n     * @return int\n     */\n" +
		"    public function double($a)\n    {\n        return $a * 2;\n    }\n" +
		"}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "public function double(int $a): int\n    {") {
		t.Errorf("Rewrite method = %q, want typed signature", out)
	}
}

func TestRewriteInheritDoc(t *testing.T) {
	src := "<?php\n" +
		"interface Greeter\n{\n" +
		"    /**\n     * @param string $name\n     * @return string\n     */\n" +
		"    public function greet($name);\n" +
		"}\n\n" +
		"class Plain implements Greeter\n{\n" +
		"    /**\n     * {@inheritdoc}\n     */\n" +
		"    public function greet($name)\n    {\n        return \"hi $name\";\n    }\n" +
		"}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "public function greet(string $name): string;") {
		t.Errorf("interface signature = %q, want string $name and : string", out)
	}
	if !strings.Contains(out, "public function greet(string $name): string\n    {") {
		t.Errorf("inherited signature = %q, want string $name and : string", out)
	}
}

func TestRewriteUndocumentedMethodInherits(t *testing.T) {
	// A method without any docblock still inherits documentation from the
	// parent class.
	src := "<?php\n" +
		"class Base\n{\n" +
		"    /**\n     * @param int $n\n     */\n" +
		"    public function set($n) {}\n" +
		"}\n\n" +
		"class Child extends Base\n{\n" +
		"    public function set($n) {}\n" +
		"}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if strings.Count(out, "public function set(int $n)") != 2 {
		t.Errorf("Rewrite inheritance = %q, want both signatures typed", out)
	}
}

func TestRewriteInterfaceBeforeParent(t *testing.T) {
	src := "<?php\n" +
		"interface I\n{\n" +
		"    /**\n     * @param string $v\n     */\n" +
		"    public function put($v);\n" +
		"}\n\n" +
		"class Base\n{\n" +
		"    /**\n     * @param int $v\n     */\n" +
		"    public function put($v) {}\n" +
		"}\n\n" +
		"class Child extends Base implements I\n{\n" +
		"    public function put($v) {}\n" +
		"}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if !strings.Contains(out, "class Child extends Base implements I\n{\n    public function put(string $v)") {
		t.Errorf("Rewrite precedence = %q, want the interface's string over the parent's int", out)
	}
}

func TestRewriteTraitDoesNotInherit(t *testing.T) {
	src := "<?php\n" +
		"trait Helper\n{\n" +
		"    /**\n     * {@inheritdoc}\n     */\n" +
		"    public function help($x) {}\n" +
		"}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if out != src {
		t.Errorf("Rewrite trait = %q, want unchanged", out)
	}
}

func TestRewriteIdempotent(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param int|null $c\n * @return float\n */\n" +
		"function f($a, $c)\n{\n    return 1.0;\n}\n"
	for _, config := range []Config{{Nullable: true}, {Nullable: false}} {
		once := rewriteStr(t, src, config)
		twice := rewriteStr(t, once, config)
		if twice != once {
			t.Errorf("second pass (nullable=%v) = %q, want %q", config.Nullable, twice, once)
		}
	}
}

func TestRewriteFullExample(t *testing.T) {
	src := "<?php\n\n" +
		"namespace Acme;\n\n" +
		"/**\n" +
		" * @param \\Acme\\Logger|null $a\n" +
		" * @param array $b\n" +
		" * @param int|null $c\n" +
		" * @param bool $e\n" +
		" *\n" +
		" * @return float\n" +
		" */\n" +
		"function calc(\\Acme\\Logger $a = null, array $b, $c, $e)\n" +
		"{\n" +
		"    return 0.0;\n" +
		"}\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	want := "function calc(\\Acme\\Logger $a = null, array $b, ?int $c, bool $e): float\n{"
	if !strings.Contains(out, want) {
		t.Errorf("Rewrite example = %q, want %q", out, want)
	}
}

func TestRewriteAnonymousFunctionUntouched(t *testing.T) {
	src := "<?php\n" +
		"/**\n * @param int $x\n */\n" +
		"$f = function ($x) { return $x; };\n"
	out := rewriteStr(t, src, Config{Nullable: true})
	if out != src {
		t.Errorf("Rewrite closure = %q, want unchanged", out)
	}
}

func TestRewriteEditPositions(t *testing.T) {
	src := "<?php\n/**\n * @param int $a\n */\nfunction f($a) {}\n"
	_, edits := RewriteStandalone([]byte(src), "test.php", Config{Nullable: true})
	if len(edits) != 1 {
		t.Fatalf("edits = %d, want 1", len(edits))
	}
	if edits[0].Text != "int " {
		t.Errorf("edit text = %q, want %q", edits[0].Text, "int ")
	}
	if edits[0].Pos.Line != 5 {
		t.Errorf("edit line = %d, want 5", edits[0].Pos.Line)
	}
}

func TestRewriteCrossFileIndex(t *testing.T) {
	iface := "<?php\nnamespace Acme;\n" +
		"interface Store\n{\n" +
		"    /**\n     * @param string $key\n     * @return bool\n     */\n" +
		"    public function has($key);\n" +
		"}\n"
	impl := "<?php\nnamespace Acme;\n" +
		"class MemoryStore implements Store\n{\n" +
		"    public function has($key)\n    {\n        return false;\n    }\n" +
		"}\n"
	index := indexFiles(t, map[string]string{
		"store.php":  iface,
		"memory.php": impl,
	})
	out, _ := RewriteSource([]byte(impl), "memory.php", index, Config{Nullable: true})
	if !strings.Contains(out, "public function has(string $key): bool\n    {") {
		t.Errorf("cross-file rewrite = %q, want inherited types", out)
	}
}
