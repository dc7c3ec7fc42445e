package formula

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	tests := []struct {
		name    string
		expr    string
		vars    map[string]float64
		want    float64
		wantErr bool
	}{
		{
			name: "empty formula is inert",
			expr: "",
			want: 0,
		},
		{
			name: "whitespace-only formula is inert",
			expr: "   \t ",
			want: 0,
		},
		{
			name: "plain number",
			expr: "42.5",
			want: 42.5,
		},
		{
			name: "operator precedence",
			expr: "2+3*4",
			want: 14,
		},
		{
			name: "parentheses override precedence",
			expr: "(2+3)*4",
			want: 20,
		},
		{
			name: "exponent",
			expr: "a^b",
			vars: map[string]float64{"a": 2, "b": 3},
			want: 8,
		},
		{
			name: "exponent is right-associative",
			expr: "2^3^2",
			want: 512,
		},
		{
			name: "unary minus binds looser than exponent",
			expr: "-2^2",
			want: -4,
		},
		{
			name: "negative exponent",
			expr: "2^-1",
			want: 0.5,
		},
		{
			name: "unary minus on variable",
			expr: "-loss + total",
			vars: map[string]float64{"loss": 3, "total": 10},
			want: 7,
		},
		{
			name: "scientific notation",
			expr: "1.5e3 + 2E-1",
			want: 1500.2,
		},
		{
			name: "process emission shape",
			expr: "input_t * carbonate_fraction * 0.44",
			vars: map[string]float64{"input_t": 1000, "carbonate_fraction": 0.85},
			want: 374,
		},
		{
			name:    "trailing operator",
			expr:    "a+",
			vars:    map[string]float64{"a": 1},
			wantErr: true,
		},
		{
			name:    "unknown variable",
			expr:    "a*b",
			vars:    map[string]float64{"a": 1},
			wantErr: true,
		},
		{
			name:    "unexpected character",
			expr:    "2 + $x",
			wantErr: true,
		},
		{
			name:    "malformed number",
			expr:    "1.2.3",
			wantErr: true,
		},
		{
			name:    "unbalanced parenthesis",
			expr:    "(1+2",
			wantErr: true,
		},
		{
			name:    "division by zero",
			expr:    "1/0",
			wantErr: true,
		},
		{
			name:    "division by zero via variable",
			expr:    "mass/qty",
			vars:    map[string]float64{"mass": 5, "qty": 0},
			wantErr: true,
		},
		{
			name:    "stray trailing token",
			expr:    "1 2",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Evaluate(tt.expr, tt.vars)
			if tt.wantErr {
				require.NotEmpty(t, got.Err, "expected an error")
				assert.Zero(t, got.Value, "errored evaluation must not carry a partial value")
				return
			}
			require.Empty(t, got.Err)
			assert.InDelta(t, tt.want, got.Value, 1e-9)
		})
	}
}

func TestValidate(t *testing.T) {
	t.Run("valid formula with known variables", func(t *testing.T) {
		v := Validate("qty * ef / 1000", []string{"qty", "ef"})
		assert.True(t, v.Valid)
		assert.Empty(t, v.Unknown)
	})

	t.Run("reports unknown variables in first-appearance order", func(t *testing.T) {
		v := Validate("x + qty*y + x", []string{"qty"})
		assert.False(t, v.Valid)
		assert.Equal(t, []string{"x", "y"}, v.Unknown)
		assert.NotEmpty(t, v.Err)
	})

	t.Run("syntax error wins over variable report", func(t *testing.T) {
		v := Validate("qty *", []string{"qty"})
		assert.False(t, v.Valid)
		assert.NotEmpty(t, v.Err)
	})

	t.Run("empty formula is valid", func(t *testing.T) {
		v := Validate("", nil)
		assert.True(t, v.Valid)
	})
}

func TestExtractVariables(t *testing.T) {
	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "deduplicated in order of first appearance",
			expr: "a + b*a + c^b",
			want: []string{"a", "b", "c"},
		},
		{
			name: "no variables",
			expr: "2 + 3",
			want: nil,
		},
		{
			name: "empty formula",
			expr: "",
			want: nil,
		},
		{
			name: "unparseable formula yields nothing",
			expr: "a +",
			want: nil,
		},
		{
			name: "underscored identifiers",
			expr: "anode_rate * carbon_fraction",
			want: []string{"anode_rate", "carbon_fraction"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractVariables(tt.expr))
		})
	}
}
