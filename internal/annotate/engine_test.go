package annotate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rewrite(text string) Output {
	return NewEngine(NewClassifier()).Rewrite(text)
}

func TestEngine_SingleDecorator(t *testing.T) {
	input := "@Injectable()\nclass {Foo}\n"

	expected := "//LOCK\n" +
		"/**\n" +
		" * Decorator Usage:\n" +
		" * ```\n" +
		" * @Injectable() \n" +
		" * ```\n" +
		" */\n" +
		"//UNLOCK\n" +
		"@Injectable()\n" +
		"class {Foo}\n"

	out := rewrite(input)
	assert.Equal(t, expected, out.Text)
	assert.Equal(t, 1, out.Blocks)
}

func TestEngine_MultilineDecorator(t *testing.T) {
	input := "@Module(\n  imports: []\n)\nclass {Bar}\n"

	expected := "//LOCK\n" +
		"/**\n" +
		" * Decorator Usage:\n" +
		" * ```\n" +
		" * @Module( imports: [] ) \n" +
		" * ```\n" +
		" */\n" +
		"//UNLOCK\n" +
		"@Module(\n" +
		"  imports: []\n" +
		")\n" +
		"class {Bar}\n"

	out := rewrite(input)
	assert.Equal(t, expected, out.Text)
	assert.Equal(t, 1, out.Blocks)
}

func TestEngine_MultilineDecoratorIsOneSummaryLine(t *testing.T) {
	input := `@Component({
  selector: 'app-root',
  templateUrl: './app.component.html',
})
export class AppComponent {}
`
	out := rewrite(input)

	assert.Equal(t, 1, strings.Count(out.Text, " * @Component("))
	assert.Contains(t, out.Text, " * @Component({ selector: 'app-root', templateUrl: './app.component.html', }) \n")
	assert.True(t, strings.HasSuffix(out.Text, "//UNLOCK\n"+input))
}

func TestEngine_FieldWithoutDecoratorUnchanged(t *testing.T) {
	input := "private name?: string;\n"

	out := rewrite(input)
	assert.Equal(t, input, out.Text)
	assert.Zero(t, out.Blocks)
}

func TestEngine_IndentedClassMembers(t *testing.T) {
	input := `export class Foo {
  @Input()
  name: string;

  @Output()
  changed = new EventEmitter<string>();
}
`
	expected := `export class Foo {
  //LOCK
  /**
   * Decorator Usage:
   * ` + "```" + `
   * @Input() 
   * ` + "```" + `
   */
  //UNLOCK
  @Input()
  name: string;

  @Output()
  changed = new EventEmitter<string>();
}
`
	out := rewrite(input)
	assert.Equal(t, expected, out.Text)
	assert.Equal(t, 1, out.Blocks)
}

func TestEngine_MultipleDecoratorsInOrder(t *testing.T) {
	input := "@Entity()\n@Table('users')\nexport class User {}\n"

	out := rewrite(input)
	require.Equal(t, 1, out.Blocks)

	lines := strings.Split(out.Text, "\n")
	assert.Equal(t, " * @Entity() ", lines[4])
	assert.Equal(t, " * @Table('users') ", lines[5])
	assert.Equal(t, []string{"@Entity()", "@Table('users')", "export class User {}", ""}, lines[9:])
}

func TestEngine_UnattachedDecoratorsAreReleased(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "followed by method", input: "@HostListener('click')\nonClick() {\n}\n"},
		{name: "separated by blank line", input: "@Injectable()\n\nclass Foo {}\n"},
		{name: "at end of input", input: "class Foo {\n  @Input()\n"},
		{name: "open multiline at end of input", input: "@Component({\n  selector: 'x',\n"},
		{name: "before guard start", input: "@Input()\n//LOCK\nname: string;\n//UNLOCK\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out := rewrite(tt.input)
			assert.Equal(t, tt.input, out.Text)
			assert.Zero(t, out.Blocks)
		})
	}
}

func TestEngine_GuardedRegionIsNotClassified(t *testing.T) {
	input := `//LOCK
@Injectable()
class Foo {}
//UNLOCK
`
	out := rewrite(input)
	assert.Equal(t, input, out.Text)
	assert.Zero(t, out.Blocks)
}

func TestEngine_Idempotent(t *testing.T) {
	inputs := []string{
		"@Injectable()\nclass {Foo}\n",
		"@Module(\n  imports: []\n)\nclass {Bar}\n",
		`import { Component, Input } from '@angular/core';

@Component({
  selector: 'app-user',
  template: '<p>{{ name }}</p>',
})
export class UserComponent {
  @Input()
  @Required()
  name: string;

  @Input() age: number;
  plain: boolean;
}

@Injectable({ providedIn: 'root' })
export class UserService {}
`,
	}

	for _, input := range inputs {
		first := rewrite(input)
		second := rewrite(first.Text)

		assert.Equal(t, first.Text, second.Text)
		assert.Zero(t, second.Blocks)
	}
}

func TestEngine_SecondRunAnnotatesOnlyNewDeclarations(t *testing.T) {
	first := rewrite("@Injectable()\nclass {Foo}\n")
	require.Equal(t, 1, first.Blocks)

	second := rewrite(first.Text + "\n@Injectable()\nclass {Bar}\n")
	assert.Equal(t, 1, second.Blocks)
	assert.Equal(t, 2, strings.Count(second.Text, "Decorator Usage"))
}

// A nested call closing on its own line ends the decorator early. The
// decorator is then released without a comment rather than misattributed.
func TestEngine_NestedParenthesesEndDecoratorEarly(t *testing.T) {
	input := `@Component({
  providers: [
    provide(Foo)
  ],
})
export class AppComponent {}
`
	out := rewrite(input)
	assert.Equal(t, input, out.Text)
	assert.Zero(t, out.Blocks)
}

func TestEngine_BlankLineInsideMultilineDecorator(t *testing.T) {
	input := "@Module(\n\n  imports: []\n)\nclass {Bar}\n"

	out := rewrite(input)
	assert.Equal(t, 1, out.Blocks)
	assert.Contains(t, out.Text, " * @Module( imports: [] ) \n")
	assert.True(t, strings.HasSuffix(out.Text, "//UNLOCK\n"+input))
}

func TestEngine_PreservesMissingFinalNewline(t *testing.T) {
	out := rewrite("@Injectable()\nclass {Foo}")
	assert.True(t, strings.HasSuffix(out.Text, "@Injectable()\nclass {Foo}"))

	assert.Equal(t, "", rewrite("").Text)
	assert.Equal(t, "\n", rewrite("\n").Text)
}

func TestEngine_CRLF(t *testing.T) {
	input := "@Injectable()\r\nclass {Foo}\r\n"

	out := rewrite(input)
	assert.Equal(t, 1, out.Blocks)
	assert.True(t, strings.HasPrefix(out.Text, "//LOCK\r\n/**\r\n"))
	assert.True(t, strings.HasSuffix(out.Text, "//UNLOCK\r\n"+input))
}

func TestEngine_InsertionOnly(t *testing.T) {
	inputs := []string{
		"@A()\n@B(\n  x\n)\nfoo: string;\n@C()\nbar() {}\n",
		"//UNLOCK\n@A()\nclass X {}\n//LOCK\n@B()\n",
		"@A(\n  nested(1)\n  more\n)\nclass Y {\n  @B() z: number;\n  w: number;\n}\n",
	}

	for _, input := range inputs {
		out := rewrite(input)
		assert.True(t, isSubsequence(strings.Split(input, "\n"), strings.Split(out.Text, "\n")), "input: %q\noutput: %q", input, out.Text)
	}
}

func isSubsequence(sub, seq []string) bool {
	i := 0
	for _, s := range seq {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}
	return i == len(sub)
}
