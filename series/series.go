package series

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strings"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Series 是一列有序的 Value，带有名称和列类型。
// 列类型由构造方式决定：New 会把每个值强制转换为给定类型，
// Infer 则根据值的种类推断类型。
type Series struct {
	Name   string  // Series 的名称
	values []Value // 元素的值
	t      Type    // Series 的类型

	Err error
}

// Type 表示 Series 的列类型。
type Type string

// 支持的 Series 类型
const (
	String Type = "string"
	Int    Type = "int"
	Float  Type = "float"
	Bool   Type = "bool"
	Object Type = "object" // 混合多种值的列
)

// MapFunction 将一个元素映射为新的元素。
type MapFunction func(Value) Value

// Indexes 表示可用于选择 Series 子集元素的元素。目前支持以下类型：
//
//	int            // 匹配给定索引号
//	[]int          // 匹配所有给定索引号
//	[]bool         // 匹配标记为 true 的 Series 中的所有元素
//	Series [Int]   // 与 []int 相同
//	Series [Bool]  // 与 []bool 相同
type Indexes interface{}

// New 是通用的 Series 构造函数。每个值都会被转换为类型 t，无法转换的值成为缺失值。
func New(values interface{}, t Type, name string) Series {
	switch t {
	case String, Int, Float, Bool, Object:
	default:
		panic(fmt.Sprintf("unknown type %v", t))
	}
	vals := toValues(values)
	for i := range vals {
		vals[i] = vals[i].As(t)
	}
	return Series{Name: name, values: vals, t: t}
}

// Infer 根据值的种类推断列类型并创建 Series。全部缺失时类型为 Float。
func Infer(values interface{}, name string) Series {
	return InferAs(values, name, Float)
}

// InferAs 与 Infer 相同，但全部缺失时使用 fallback 作为列类型。
func InferAs(values interface{}, name string, fallback Type) Series {
	vals := toValues(values)
	t := detectType(vals, fallback)
	if t != Object {
		for i := range vals {
			vals[i] = vals[i].As(t)
		}
	}
	return Series{Name: name, values: vals, t: t}
}

// detectType 返回能容纳所有非缺失值的最窄列类型。
func detectType(vals []Value, fallback Type) Type {
	var hasStrings, hasFloats, hasInts, hasBools bool
	for _, v := range vals {
		switch v.Kind() {
		case Text:
			hasStrings = true
		case Real:
			hasFloats = true
		case Integer:
			hasInts = true
		case Boolean:
			hasBools = true
		}
	}
	numeric := hasInts || hasFloats
	switch {
	case !hasStrings && !hasBools && !numeric:
		return fallback
	case hasStrings && !hasBools && !numeric:
		return String
	case hasBools && !hasStrings && !numeric:
		return Bool
	case numeric && !hasStrings && !hasBools:
		if hasFloats {
			return Float
		}
		return Int
	}
	return Object
}

// toValues 将受支持的输入转换为新分配的 []Value。
func toValues(values interface{}) []Value {
	switch v := values.(type) {
	case nil:
		return []Value{NA()}
	case []Value:
		ret := make([]Value, len(v))
		copy(ret, v)
		return ret
	case []string:
		ret := make([]Value, len(v))
		for i, s := range v {
			ret[i] = StringValue(s)
		}
		return ret
	case []int:
		ret := make([]Value, len(v))
		for i, n := range v {
			ret[i] = IntValue(n)
		}
		return ret
	case []float64:
		ret := make([]Value, len(v))
		for i, f := range v {
			ret[i] = FloatValue(f)
		}
		return ret
	case []bool:
		ret := make([]Value, len(v))
		for i, b := range v {
			ret[i] = BoolValue(b)
		}
		return ret
	case Series:
		return v.Values()
	}
	rv := reflect.ValueOf(values)
	if rv.Kind() == reflect.Slice {
		ret := make([]Value, rv.Len())
		for i := range ret {
			ret[i] = ValueOf(rv.Index(i).Interface())
		}
		return ret
	}
	return []Value{ValueOf(values)}
}

// Strings 是 String Series 的构造函数。
func Strings(values interface{}) Series {
	return New(values, String, "")
}

// Ints 是 Int Series 的构造函数。
func Ints(values interface{}) Series {
	return New(values, Int, "")
}

// Floats 是 Float Series 的构造函数。
func Floats(values interface{}) Series {
	return New(values, Float, "")
}

// Bools 是 Bool Series 的构造函数。
func Bools(values interface{}) Series {
	return New(values, Bool, "")
}

// Empty 返回与相同类型的空 Series。
func (s Series) Empty() Series {
	return Series{Name: s.Name, values: []Value{}, t: s.t}
}

// 返回错误或 nil（如果未发生错误）
func (s *Series) Error() error {
	return s.Err
}

// Copy 方法将返回 Series 的副本。
func (s Series) Copy() Series {
	return Series{
		Name:   s.Name,
		values: s.Values(),
		t:      s.t,
		Err:    s.Err,
	}
}

// Values 返回 Series 所有元素的副本。
func (s Series) Values() []Value {
	ret := make([]Value, len(s.values))
	copy(ret, s.values)
	return ret
}

// Subset 根据给定的 Indexes 返回 Series 的子集。
func (s Series) Subset(indexes Indexes) Series {
	if err := s.Err; err != nil {
		return s
	}
	idx, err := parseIndexes(s.Len(), indexes)
	if err != nil {
		s.Err = err
		return s
	}
	vals := make([]Value, len(idx))
	for k, i := range idx {
		if i < 0 || i >= s.Len() {
			s.Err = fmt.Errorf("索引错误: 索引 %d 超出范围", i)
			return s
		}
		vals[k] = s.values[i]
	}
	return Series{Name: s.Name, values: vals, t: s.t}
}

// HasNaN 方法检查 Series 是否包含缺失元素。
func (s Series) HasNaN() bool {
	for _, v := range s.values {
		if v.IsNA() {
			return true
		}
	}
	return false
}

// IsNaN 方法返回一个标识哪些元素缺失的数组。
func (s Series) IsNaN() []bool {
	ret := make([]bool, s.Len())
	for i, v := range s.values {
		ret[i] = v.IsNA()
	}
	return ret
}

// NaNCount 返回缺失元素的个数。
func (s Series) NaNCount() int {
	n := 0
	for _, v := range s.values {
		if v.IsNA() {
			n++
		}
	}
	return n
}

// Records 方法将 Series 的元素作为 []string 返回。
func (s Series) Records() []string {
	ret := make([]string, s.Len())
	for i, v := range s.values {
		ret[i] = v.String()
	}
	return ret
}

// Float 方法将 Series 的元素作为 []float64 返回，无法转换的元素为 NaN。
func (s Series) Float() []float64 {
	ret := make([]float64, s.Len())
	for i, v := range s.values {
		ret[i] = v.Float()
	}
	return ret
}

// Int 方法将 Series 的元素作为 []int 返回，如果转换不可能则返回错误。
func (s Series) Int() ([]int, error) {
	ret := make([]int, s.Len())
	for i, v := range s.values {
		n, err := v.Int()
		if err != nil {
			return nil, err
		}
		ret[i] = n
	}
	return ret, nil
}

// Bool 方法将 Series 的元素作为 []bool 返回，如果转换不可能则返回错误。
func (s Series) Bool() ([]bool, error) {
	ret := make([]bool, s.Len())
	for i, v := range s.values {
		b, err := v.Bool()
		if err != nil {
			return nil, err
		}
		ret[i] = b
	}
	return ret, nil
}

// Type 方法返回给定 Series 的类型。
func (s Series) Type() Type {
	return s.t
}

// Len 方法返回给定 Series 的长度。
func (s Series) Len() int {
	return len(s.values)
}

// String 实现了 Series 的 Stringer 接口。
func (s Series) String() string {
	return "[" + strings.Join(s.Records(), " ") + "]"
}

// Str 方法打印关于给定 Series 的一些额外信息。
func (s Series) Str() string {
	var ret []string
	if s.Name != "" {
		ret = append(ret, "Name: "+s.Name)
	}
	ret = append(ret, "Type: "+fmt.Sprint(s.t))
	ret = append(ret, "Length: "+fmt.Sprint(s.Len()))
	if s.Len() != 0 {
		ret = append(ret, "Values: "+s.String())
	}
	return strings.Join(ret, "\n")
}

// Val 方法返回给定索引处元素对应的 Go 值。如果索引超出范围，则会引发 panic。
func (s Series) Val(i int) interface{} {
	return s.values[i].Interface()
}

// Elem 方法返回给定索引处的元素。如果索引超出范围，则会引发 panic。
func (s Series) Elem(i int) Value {
	return s.values[i]
}

// parseIndexes 方法解析给定 Series 的索引，长度为 `l`。不进行越界检查。
func parseIndexes(l int, indexes Indexes) ([]int, error) {
	var idx []int
	switch idxs := indexes.(type) {
	case []int:
		idx = idxs
	case int:
		idx = []int{idxs}
	case []bool:
		if len(idxs) != l {
			return nil, fmt.Errorf("索引错误: 索引维度不匹配")
		}
		for i, b := range idxs {
			if b {
				idx = append(idx, i)
			}
		}
	case Series:
		if err := idxs.Err; err != nil {
			return nil, fmt.Errorf("索引错误: 新值存在错误: %v", err)
		}
		if idxs.HasNaN() {
			return nil, fmt.Errorf("索引错误: 索引包含 NaN")
		}
		switch idxs.t {
		case Int:
			return idxs.Int()
		case Bool:
			bools, err := idxs.Bool()
			if err != nil {
				return nil, fmt.Errorf("索引错误: %v", err)
			}
			return parseIndexes(l, bools)
		}
		return nil, fmt.Errorf("索引错误: 未知索引模式")
	default:
		return nil, fmt.Errorf("索引错误: 未知索引模式")
	}
	return idx, nil
}

// Order 方法返回排序 Series 所需的索引。缺失元素按出现顺序推送到末尾。
func (s Series) Order(reverse bool) []int {
	var present, nas []int
	for i, v := range s.values {
		if v.IsNA() {
			nas = append(nas, i)
		} else {
			present = append(present, i)
		}
	}
	sort.SliceStable(present, func(a, b int) bool {
		va, vb := s.values[present[a]], s.values[present[b]]
		if reverse {
			return vb.Less(va)
		}
		return va.Less(vb)
	})
	return append(present, nas...)
}

// Map 方法将 MapFunction 函数应用于每个元素，并根据结果重新推断列类型。
func (s Series) Map(f MapFunction) Series {
	mapped := make([]Value, s.Len())
	for i, v := range s.values {
		mapped[i] = f(v)
	}
	return InferAs(mapped, s.Name, s.t)
}

// numeric 返回非缺失元素的 float64 值，按原顺序排列。
func (s Series) numeric() []float64 {
	var ret []float64
	for _, v := range s.values {
		if f := v.Float(); !math.IsNaN(f) {
			ret = append(ret, f)
		}
	}
	return ret
}

// isNumeric 检查 Series 是否可以计算数值统计量。
func (s Series) isNumeric() bool {
	return s.t == Int || s.t == Float || s.t == Bool
}

// StdDev 方法计算非缺失元素的标准差。
func (s Series) StdDev() float64 {
	xs := s.numeric()
	if !s.isNumeric() || len(xs) == 0 {
		return math.NaN()
	}
	return stat.StdDev(xs, nil)
}

// Mean 方法计算非缺失元素的平均值。
func (s Series) Mean() float64 {
	xs := s.numeric()
	if !s.isNumeric() || len(xs) == 0 {
		return math.NaN()
	}
	return stat.Mean(xs, nil)
}

// Median 方法计算中位数。
func (s Series) Median() float64 {
	return s.Quantile(0.5)
}

// Quantile 方法返回 Series 样本，使得 x 大于或等于样本比例 p。
func (s Series) Quantile(p float64) float64 {
	xs := s.numeric()
	if !s.isNumeric() || len(xs) == 0 || p < 0 || p > 1 {
		return math.NaN()
	}
	sort.Float64s(xs)
	if p == 0.5 && len(xs)%2 == 0 {
		// 偶数长度的中位数取中间两个元素的平均值。
		return (xs[len(xs)/2-1] + xs[len(xs)/2]) * 0.5
	}
	return stat.Quantile(p, stat.Empirical, xs, nil)
}

// Max 方法返回 Series 中的最大元素值。
func (s Series) Max() float64 {
	xs := s.numeric()
	if !s.isNumeric() || len(xs) == 0 {
		return math.NaN()
	}
	return floats.Max(xs)
}

// Min 方法返回 Series 中的最小元素值。
func (s Series) Min() float64 {
	xs := s.numeric()
	if !s.isNumeric() || len(xs) == 0 {
		return math.NaN()
	}
	return floats.Min(xs)
}

// MaxStr 方法返回字符串类型 Series 中的最大元素值。
func (s Series) MaxStr() string {
	if s.t != String {
		return ""
	}
	ix := s.Order(true)
	if len(ix) == 0 || s.values[ix[0]].IsNA() {
		return ""
	}
	return s.values[ix[0]].String()
}

// MinStr 方法返回字符串类型 Series 中的最小元素值。
func (s Series) MinStr() string {
	if s.t != String {
		return ""
	}
	ix := s.Order(false)
	if len(ix) == 0 || s.values[ix[0]].IsNA() {
		return ""
	}
	return s.values[ix[0]].String()
}

// Sum 方法计算非缺失元素的和。
func (s Series) Sum() float64 {
	xs := s.numeric()
	if !s.isNumeric() || len(xs) == 0 {
		return math.NaN()
	}
	return floats.Sum(xs)
}
