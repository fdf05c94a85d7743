package generate

import (
	"bufio"
	"strings"
	"testing"

	"falsec/syntax"
)

// compile parses src and generates its LLVM module as text.
func compile(t *testing.T, src string) string {
	t.Helper()

	program, err := syntax.NewParser(bufio.NewReader(strings.NewReader(src))).Parse()
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}

	return NewGenerator().Generate(program).String()
}

// mustContain asserts that the module text contains every given fragment.
func mustContain(t *testing.T, module string, fragments ...string) {
	t.Helper()

	for _, frag := range fragments {
		if !strings.Contains(module, frag) {
			t.Errorf("module missing %q", frag)
		}
	}
}

func TestGenerate_Prologue(t *testing.T) {
	module := compile(t, "")

	mustContain(t, module,
		"%union.FalseValue = type { [8 x i8] }",
		"@malloc", "@realloc", "@free", "@getchar", "@putchar", "@printf",
		"@.fmt", "@.num",
		"@stack", "@stack_size", "@stack_capacity",
		"@stack_init", "@stack_free",
		"define i32 @main()",
		"ret i32 0",
	)

	// the 26 variable cells
	for c := 'a'; c <= 'z'; c++ {
		mustContain(t, module, "@var_"+string(c))
	}
}

func TestGenerate_TwelveStackHelpers(t *testing.T) {
	module := compile(t, "")

	for _, view := range []string{"any", "int", "ref", "quote"} {
		mustContain(t, module,
			"define void @stack_push_"+view,
			"@stack_pop_"+view,
			"@stack_peek_"+view,
		)
	}
}

func TestGenerate_MainBracketsStackLifecycle(t *testing.T) {
	module := compile(t, "1 .")

	initNdx := strings.Index(module, "define i32 @main()")
	if initNdx == -1 {
		t.Fatal("no main definition")
	}

	mainText := module[initNdx:]
	callInit := strings.Index(mainText, "call void @stack_init()")
	callFree := strings.Index(mainText, "call void @stack_free()")
	if callInit == -1 || callFree == -1 || callFree < callInit {
		t.Error("main should call stack_init before stack_free")
	}
}

func TestGenerate_HelloWorld(t *testing.T) {
	module := compile(t, `"Hello, World!"`)

	mustContain(t, module,
		"@str_0",
		`c"Hello, World!\00"`,
	)

	// strings are printed, never pushed
	mainText := module[strings.Index(module, "define i32 @main()"):]
	if strings.Contains(mainText, "call void @stack_push") {
		t.Error("a lone string literal should not push anything in main")
	}
}

func TestGenerate_StringInterning(t *testing.T) {
	module := compile(t, `"hi" "hi" "yo"`)

	if n := strings.Count(module, "@str_0 = "); n != 1 {
		t.Errorf("@str_0 defined %d times", n)
	}
	if n := strings.Count(module, "@str_1 = "); n != 1 {
		t.Errorf("@str_1 defined %d times", n)
	}
	if strings.Contains(module, "@str_2") {
		t.Error("byte-identical literals must share one constant")
	}
}

func TestGenerate_QuoteDedup(t *testing.T) {
	module := compile(t, "[ 1 . ] ! [ 1 . ] !")

	if n := strings.Count(module, "define void @lambda_"); n != 1 {
		t.Errorf("%d lambda definitions, want 1 shared by both call sites", n)
	}
}

func TestGenerate_QuotesDifferingInSecondChildAreDistinct(t *testing.T) {
	module := compile(t, "[1 2]%[1 3]%")

	if n := strings.Count(module, "define void @lambda_"); n != 2 {
		t.Errorf("%d lambda definitions, want 2", n)
	}
}

func TestGenerate_NestedQuotesFlattened(t *testing.T) {
	module := compile(t, "[[1]!]!")

	if n := strings.Count(module, "define void @lambda_"); n != 2 {
		t.Errorf("%d lambda definitions, want inner and outer hoisted", n)
	}
}

func TestGenerate_LambdaNamesUnique(t *testing.T) {
	module := compile(t, "[1]%[2]%[3]%")

	for _, name := range []string{"@lambda_0", "@lambda_1", "@lambda_2"} {
		if n := strings.Count(module, "define void "+name+"()"); n != 1 {
			t.Errorf("%s defined %d times", name, n)
		}
	}
}

func TestGenerate_WhileLoopShape(t *testing.T) {
	module := compile(t, "1 [ $ 0 > ] [ $ . 1 - ] #")

	mustContain(t, module,
		"label_0:",
		"label_1:",
		"label_2:",
	)
}

func TestGenerate_ExecuteIfShape(t *testing.T) {
	module := compile(t, "1 [ 2 . ] ?")

	mustContain(t, module, "label_0:", "label_1:")
}

func TestGenerate_ComparisonSignExtends(t *testing.T) {
	module := compile(t, "1 2 =")

	mustContain(t, module, "icmp eq i32", "sext i1")
}

func TestGenerate_ArithmeticOps(t *testing.T) {
	module := compile(t, "1 2 + 3 - 4 * 5 / _ ~ 6 & 7 |")

	mustContain(t, module,
		"add i32", "sub i32", "mul i32", "sdiv i32",
		"and i32", "or i32", "xor i32",
	)
}

func TestGenerate_Determinism(t *testing.T) {
	src := `"dup" [ $ . ] ! 1 2 + . a: a; [ $ 0 > ] [ 1 - ] #`

	first := compile(t, src)
	second := compile(t, src)

	if first != second {
		t.Error("compiling the same source twice should be byte-identical")
	}
}
