package series

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/spf13/cast"
)

// Kind 表示 Value 实际携带的数据种类。
type Kind uint8

// 支持的 Value 种类
const (
	Missing Kind = iota // 缺失值
	Text                // 文本
	Integer             // 整数
	Real                // 浮点数
	Boolean             // 布尔值
)

// String 返回 Kind 的名称。
func (k Kind) String() string {
	switch k {
	case Missing:
		return "missing"
	case Text:
		return "text"
	case Integer:
		return "integer"
	case Real:
		return "real"
	case Boolean:
		return "boolean"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Value 是 Series 中的单个单元格。它是一个带标签的变体，
// 标签 kind 决定哪个字段有效。零值即为缺失值。
type Value struct {
	kind Kind
	s    string
	i    int
	f    float64
	b    bool
}

// NA 返回缺失值。
func NA() Value {
	return Value{}
}

// StringValue 创建文本值。"NaN" 按惯例视为缺失值。
func StringValue(s string) Value {
	if s == "NaN" {
		return NA()
	}
	return Value{kind: Text, s: s}
}

// Literal 创建文本值，不把 "NaN" 视为缺失值。用于列名等必须原样保留的文本。
func Literal(s string) Value {
	return Value{kind: Text, s: s}
}

// IntValue 创建整数值。
func IntValue(i int) Value {
	return Value{kind: Integer, i: i}
}

// FloatValue 创建浮点值，NaN 视为缺失值。
func FloatValue(f float64) Value {
	if math.IsNaN(f) {
		return NA()
	}
	return Value{kind: Real, f: f}
}

// BoolValue 创建布尔值。
func BoolValue(b bool) Value {
	return Value{kind: Boolean, b: b}
}

// ValueOf 将任意 Go 值转换为 Value。只有 nil、浮点 NaN 和文本 "NaN" 得到缺失值；
// 无法识别的类型保留为 fmt.Sprint 的文本，超出 int 范围的无符号整数保留为十进制文本。
func ValueOf(v interface{}) Value {
	switch val := v.(type) {
	case nil:
		return NA()
	case Value:
		return val
	case string:
		return StringValue(val)
	case int:
		return IntValue(val)
	case float64:
		return FloatValue(val)
	case float32:
		return FloatValue(float64(val))
	case bool:
		return BoolValue(val)
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return IntValue(int(i))
		}
		if f, err := val.Float64(); err == nil {
			return FloatValue(f)
		}
		return StringValue(val.String())
	case uint:
		return uintValue(uint64(val))
	case uint64:
		return uintValue(val)
	case int8, int16, int32, int64, uint8, uint16, uint32:
		i, err := cast.ToIntE(val)
		if err != nil {
			return Literal(fmt.Sprint(val))
		}
		return IntValue(i)
	default:
		s, err := cast.ToStringE(val)
		if err != nil {
			return Literal(fmt.Sprint(val))
		}
		return StringValue(s)
	}
}

// uintValue 把无符号整数转换为整数值，超出 int 范围时保留其十进制文本。
func uintValue(u uint64) Value {
	if u > math.MaxInt {
		return Literal(strconv.FormatUint(u, 10))
	}
	return IntValue(int(u))
}

// Kind 返回值的种类。
func (v Value) Kind() Kind {
	return v.kind
}

// IsNA 检查值是否缺失。
func (v Value) IsNA() bool {
	return v.kind == Missing
}

// IsNumeric 检查值是否为整数或浮点数。
func (v Value) IsNumeric() bool {
	return v.kind == Integer || v.kind == Real
}

// String 返回值的字符串表示，缺失值为 "NaN"。
func (v Value) String() string {
	switch v.kind {
	case Text:
		return v.s
	case Integer:
		return strconv.Itoa(v.i)
	case Real:
		return strconv.FormatFloat(v.f, 'f', -1, 64)
	case Boolean:
		return strconv.FormatBool(v.b)
	}
	return "NaN"
}

// Float 将值转换为 float64，无法转换时返回 NaN。
func (v Value) Float() float64 {
	switch v.kind {
	case Text:
		f, err := strconv.ParseFloat(v.s, 64)
		if err != nil {
			return math.NaN()
		}
		return f
	case Integer:
		return float64(v.i)
	case Real:
		return v.f
	case Boolean:
		if v.b {
			return 1
		}
		return 0
	}
	return math.NaN()
}

// Int 将值转换为整数。
func (v Value) Int() (int, error) {
	switch v.kind {
	case Text:
		return strconv.Atoi(v.s)
	case Integer:
		return v.i, nil
	case Real:
		if math.IsInf(v.f, 0) {
			return 0, fmt.Errorf("无法将 Inf 转换为整数")
		}
		return int(v.f), nil
	case Boolean:
		if v.b {
			return 1, nil
		}
		return 0, nil
	}
	return 0, fmt.Errorf("无法将 NaN 转换为整数")
}

// Bool 将值转换为布尔值。
func (v Value) Bool() (bool, error) {
	switch v.kind {
	case Text:
		switch strings.ToLower(v.s) {
		case "true", "t", "1":
			return true, nil
		case "false", "f", "0":
			return false, nil
		}
		return false, fmt.Errorf("无法将字符串 %q 转换为布尔值", v.s)
	case Integer, Real:
		switch v.Float() {
		case 1:
			return true, nil
		case 0:
			return false, nil
		}
		return false, fmt.Errorf("无法将数值 %v 转换为布尔值", v)
	case Boolean:
		return v.b, nil
	}
	return false, fmt.Errorf("无法将 NaN 转换为布尔值")
}

// Interface 返回值对应的 Go 值：nil、string、int、float64 或 bool。
func (v Value) Interface() interface{} {
	switch v.kind {
	case Text:
		return v.s
	case Integer:
		return v.i
	case Real:
		return v.f
	case Boolean:
		return v.b
	}
	return nil
}

// Eq 比较两个值是否相等。缺失值与任何值都不相等，整数与浮点数按数值比较。
func (v Value) Eq(o Value) bool {
	if v.IsNA() || o.IsNA() {
		return false
	}
	return v.Key() == o.Key()
}

// Less 比较 v 是否小于 o。缺失值不参与比较。
// 不同种类的值按种类排序，整数与浮点数视为同一种类。
func (v Value) Less(o Value) bool {
	if v.IsNA() || o.IsNA() {
		return false
	}
	if v.kind == Integer && o.kind == Integer {
		return v.i < o.i
	}
	if v.IsNumeric() && o.IsNumeric() {
		return v.Float() < o.Float()
	}
	if v.kind != o.kind {
		return v.kind < o.kind
	}
	switch v.kind {
	case Text:
		return v.s < o.s
	case Boolean:
		return !v.b && o.b
	}
	return false
}

// Key 是 Value 的可比较哈希键，与 Eq 的语义一致，
// 另外缺失值拥有自己的键，便于把缺失值当作一个类别计数。
type Key struct {
	kind Kind
	s    string
	i    int
	f    float64
	b    bool
}

// Key 返回值的哈希键。整数按 int 精确区分；整数值且在 int 范围内的浮点数
// 使用整数键，因此 IntValue(1) 与 FloatValue(1) 的键相同。
func (v Value) Key() Key {
	switch v.kind {
	case Text:
		return Key{kind: Text, s: v.s}
	case Integer:
		return Key{kind: Integer, i: v.i}
	case Real:
		if v.f == math.Trunc(v.f) && v.f >= math.MinInt && v.f < -math.MinInt {
			return Key{kind: Integer, i: int(v.f)}
		}
		return Key{kind: Real, f: v.f}
	case Boolean:
		return Key{kind: Boolean, b: v.b}
	}
	return Key{}
}

// As 将值转换为 t 类型的列所能容纳的值，无法转换时得到缺失值。
func (v Value) As(t Type) Value {
	if v.IsNA() {
		return v
	}
	switch t {
	case String:
		return Value{kind: Text, s: v.String()}
	case Int:
		i, err := v.Int()
		if err != nil {
			return NA()
		}
		return IntValue(i)
	case Float:
		return FloatValue(v.Float())
	case Bool:
		b, err := v.Bool()
		if err != nil {
			return NA()
		}
		return BoolValue(b)
	}
	return v
}
