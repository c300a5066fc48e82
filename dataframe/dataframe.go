package dataframe

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/Pilo-pillow/dataclean/series"
)

// DataFrame 是一个表示带有命名列的数据表的数据结构。
// 所有列长度相同。没有列的 DataFrame 仍然记录行数。
type DataFrame struct {
	columns []series.Series
	ncols   int
	nrows   int

	Err error
}

// New 使用提供的 series 创建一个新的 DataFrame。
// 它检查错误，复制系列，并修复重复或缺失的列名。
func New(se ...series.Series) DataFrame {
	if len(se) == 0 {
		return DataFrame{Err: fmt.Errorf("empty DataFrame")}
	}

	columns := make([]series.Series, len(se))
	for i, s := range se {
		columns[i] = s.Copy()
	}
	nrows, _, err := checkColumnsDimensions(columns...)
	if err != nil {
		return DataFrame{Err: err}
	}
	return build(columns, nrows)
}

// build 用已拥有的列创建 DataFrame 并修复列名，不做复制。
func build(columns []series.Series, nrows int) DataFrame {
	df := DataFrame{
		columns: columns,
		ncols:   len(columns),
		nrows:   nrows,
	}
	colnames := df.Names()
	fixColnames(colnames)
	for i, colname := range colnames {
		df.columns[i].Name = colname
	}
	return df
}

// checkColumnsDimensions 检查提供的 series 的维度。
// 它返回行数、列数以及任何错误。
func checkColumnsDimensions(se ...series.Series) (nrows, ncols int, err error) {
	ncols = len(se)
	nrows = -1
	if ncols == 0 {
		err = fmt.Errorf("no Series given")
		return
	}
	for i, s := range se {
		if s.Err != nil {
			err = fmt.Errorf("error on series %d: %v", i, s.Err)
			return
		}
		if nrows == -1 {
			nrows = s.Len()
		}
		if nrows != s.Len() {
			err = fmt.Errorf("arguments have different dimensions")
			return
		}
	}
	return
}

// Copy 创建 DataFrame 的深层副本。
func (df DataFrame) Copy() DataFrame {
	columns := make([]series.Series, df.ncols)
	for i, s := range df.columns {
		columns[i] = s.Copy()
	}
	return DataFrame{
		columns: columns,
		ncols:   df.ncols,
		nrows:   df.nrows,
		Err:     df.Err,
	}
}

// String 返回 DataFrame 的字符串表示。
func (df DataFrame) String() (str string) {
	return df.print(true, true, true, true, 10, 70, "DataFrame")
}

// Error 返回与 DataFrame 相关联的错误。
func (df *DataFrame) Error() error {
	return df.Err
}

// print 生成 DataFrame 的格式化字符串表示。
func (df DataFrame) print(
	shortRows, shortCols, showDims, showTypes bool,
	maxRows int,
	maxCharsTotal int,
	class string) (str string) {

	pad := func(s string, nchar int, left bool) string {
		n := utf8.RuneCountInString(s)
		if n >= nchar {
			return s
		}
		if left {
			return strings.Repeat(" ", nchar-n) + s
		}
		return s + strings.Repeat(" ", nchar-n)
	}

	if df.Err != nil {
		return fmt.Sprintf("%s error: %v", class, df.Err)
	}
	nrows, ncols := df.Dims()
	if nrows == 0 || ncols == 0 {
		return fmt.Sprintf("Empty %s", class)
	}

	shown := df
	shortening := shortRows && nrows > maxRows
	if shortening {
		idx := make([]int, maxRows)
		for i := range idx {
			idx[i] = i
		}
		shown = df.Subset(idx)
	}
	records := shown.Records()

	if showDims {
		str += fmt.Sprintf("[%dx%d] %s\n\n", nrows, ncols, class)
	}

	for i := range records {
		add := ""
		if i != 0 {
			add = strconv.Itoa(i-1) + ":"
		}
		records[i] = append([]string{add}, records[i]...)
	}
	if shortening {
		dots := make([]string, ncols+1)
		for i := 1; i < ncols+1; i++ {
			dots[i] = "..."
		}
		records = append(records, dots)
	}
	typesrow := []string{""}
	for _, t := range df.Types() {
		typesrow = append(typesrow, fmt.Sprintf("<%v>", t))
	}
	if showTypes {
		records = append(records, typesrow)
	}

	maxChars := make([]int, ncols+1)
	for i := range records {
		for j := range records[i] {
			q := strconv.Quote(records[i][j])
			records[i][j] = q[1 : len(q)-1]
			if n := utf8.RuneCountInString(records[i][j]); n > maxChars[j] {
				maxChars[j] = n
			}
		}
	}

	maxCols := len(records[0])
	var notShowing []string
	if shortCols {
		cum := 0
		for colnum, m := range maxChars {
			cum += m
			if cum > maxCharsTotal {
				maxCols = colnum
				break
			}
		}
		for i := maxCols; i < len(records[0]); i++ {
			notShowing = append(notShowing, fmt.Sprintf("%s %s", records[0][i], typesrow[i]))
		}
	}

	for i := range records {
		records[i][0] = pad(records[i][0], maxChars[0]+1, true)
		for j := 1; j < ncols; j++ {
			records[i][j] = pad(records[i][j], maxChars[j], false)
		}
		records[i] = records[i][0:maxCols]
		if len(notShowing) != 0 {
			records[i] = append(records[i], "...")
		}
		str += strings.Join(records[i], " ") + "\n"
	}
	if len(notShowing) != 0 {
		str += fmt.Sprintf("\nNot Showing: %s\n", strings.Join(notShowing, ", "))
	}
	return str
}

// Subset 方法返回一个根据指定索引选择的行的新DataFrame。
func (df DataFrame) Subset(indexes series.Indexes) DataFrame {
	if df.Err != nil {
		return df
	}
	if df.ncols == 0 {
		// 没有列时借助一个占位列来计算选中的行数。
		rows := series.Ints(make([]int, df.nrows)).Subset(indexes)
		if rows.Err != nil {
			return DataFrame{Err: rows.Err}
		}
		return DataFrame{nrows: rows.Len()}
	}
	columns := make([]series.Series, df.ncols)
	for i, column := range df.columns {
		columns[i] = column.Subset(indexes)
	}
	nrows, ncols, err := checkColumnsDimensions(columns...)
	if err != nil {
		return DataFrame{Err: err}
	}
	return DataFrame{
		columns: columns,
		ncols:   ncols,
		nrows:   nrows,
	}
}

// SelectIndexes 表示可以用来选择列的索引，支持 int、[]int、[]bool、string 和 []string。
type SelectIndexes interface{}

// Select 方法返回只包含所选列的新DataFrame。
func (df DataFrame) Select(indexes SelectIndexes) DataFrame {
	if df.Err != nil {
		return df
	}
	idx, err := parseSelectIndexes(df.ncols, indexes, df.Names())
	if err != nil {
		return DataFrame{Err: fmt.Errorf("can't select columns: %w", err)}
	}
	columns := make([]series.Series, len(idx))
	for k, i := range idx {
		if i < 0 || i >= df.ncols {
			return DataFrame{Err: fmt.Errorf("can't select columns: index out of range")}
		}
		columns[k] = df.columns[i].Copy()
	}
	return build(columns, df.nrows)
}

// Drop 方法返回一个删除所选列后的新DataFrame。删除全部列时结果保留行数。
func (df DataFrame) Drop(indexes SelectIndexes) DataFrame {
	if df.Err != nil {
		return df
	}
	idx, err := parseSelectIndexes(df.ncols, indexes, df.Names())
	if err != nil {
		return DataFrame{Err: fmt.Errorf("无法选择列：%w", err)}
	}
	columns := []series.Series{}
	for k, col := range df.columns {
		if !inIntSlice(k, idx) {
			columns = append(columns, col.Copy())
		}
	}
	return build(columns, df.nrows)
}

// Mutate 方法用提供的Series替换同名列，或在不存在时追加为新列。
func (df DataFrame) Mutate(s series.Series) DataFrame {
	if df.Err != nil {
		return df
	}
	if s.Err != nil {
		return DataFrame{Err: fmt.Errorf("mutate: %v", s.Err)}
	}
	if df.ncols > 0 && s.Len() != df.nrows {
		return DataFrame{Err: fmt.Errorf("mutate: 维度不匹配")}
	}
	out := df.Copy()
	if idx := out.colIndex(s.Name); idx != -1 {
		out.columns[idx] = s.Copy()
		return out
	}
	return build(append(out.columns, s.Copy()), s.Len())
}

// Rename 方法把名为 oldname 的列改名为 newname，返回新的 DataFrame。
// 新列名与已有列名重复时按 fixColnames 的规则追加后缀。
func (df DataFrame) Rename(newname, oldname string) DataFrame {
	if df.Err != nil {
		return df
	}
	idx := df.colIndex(oldname)
	if idx == -1 {
		return DataFrame{Err: fmt.Errorf("rename: %w", &UnknownColumnError{Name: oldname})}
	}
	out := df.Copy()
	out.columns[idx].Name = newname
	return build(out.columns, out.nrows)
}

// Capply 方法对DataFrame的每一列应用给定的函数。
// 它返回包含应用结果的新DataFrame。
func (df DataFrame) Capply(f func(series.Series) series.Series) DataFrame {
	if df.Err != nil {
		return df
	}
	if df.ncols == 0 {
		return df.Copy()
	}
	columns := make([]series.Series, df.ncols)
	for i, s := range df.columns {
		applied := f(s.Copy())
		applied.Name = s.Name
		columns[i] = applied
	}
	return New(columns...)
}

// Names 返回 DataFrame 的列名。
func (df DataFrame) Names() []string {
	colnames := make([]string, df.ncols)
	for i, s := range df.columns {
		colnames[i] = s.Name
	}
	return colnames
}

// Types 返回 DataFrame 的列类型。
func (df DataFrame) Types() []series.Type {
	coltypes := make([]series.Type, df.ncols)
	for i, s := range df.columns {
		coltypes[i] = s.Type()
	}
	return coltypes
}

// Dims 返回 DataFrame 的行数和列数。
func (df DataFrame) Dims() (int, int) {
	return df.Nrow(), df.Ncol()
}

// Nrow 返回 DataFrame 的行数。
func (df DataFrame) Nrow() int {
	return df.nrows
}

// Ncol 返回 DataFrame 的列数。
func (df DataFrame) Ncol() int {
	return df.ncols
}

// Col 根据列名返回 DataFrame 的列的副本。列不存在时返回带有 *UnknownColumnError 的 Series。
func (df DataFrame) Col(colname string) series.Series {
	if df.Err != nil {
		return series.Series{Err: df.Err}
	}
	idx := df.colIndex(colname)
	if idx < 0 {
		return series.Series{Err: &UnknownColumnError{Name: colname}}
	}
	return df.columns[idx].Copy()
}

// HasCol 检查列名是否存在。
func (df DataFrame) HasCol(colname string) bool {
	return df.colIndex(colname) != -1
}

// colIndex 返回列名称在 DataFrame 中的索引，如果找不到返回 -1。
func (df DataFrame) colIndex(s string) int {
	for k, col := range df.columns {
		if col.Name == s {
			return k
		}
	}
	return -1
}

// Records 返回 DataFrame 的记录，以二维字符串切片形式返回，第一行为列名。
func (df DataFrame) Records() [][]string {
	records := [][]string{df.Names()}
	if df.ncols == 0 || df.nrows == 0 {
		return records
	}
	var tRecords [][]string
	for _, col := range df.columns {
		tRecords = append(tRecords, col.Records())
	}
	return append(records, transposeRecords(tRecords)...)
}

// Maps 返回 DataFrame 的记录，每一行是一个列名到值的映射，缺失值为 nil。
func (df DataFrame) Maps() []map[string]interface{} {
	maps := make([]map[string]interface{}, df.nrows)
	for i := 0; i < df.nrows; i++ {
		m := make(map[string]interface{}, df.ncols)
		for _, col := range df.columns {
			m[col.Name] = col.Val(i)
		}
		maps[i] = m
	}
	return maps
}

// Elem 返回指定行和列位置的 DataFrame 单元格元素。
func (df DataFrame) Elem(r, c int) series.Value {
	return df.columns[c].Elem(r)
}

// fixColnames 修复列名，处理重复和缺失的列名，保证列名的唯一性。
func fixColnames(colnames []string) {
	dupnamesidx := make(map[string][]int)
	var missingnames []int
	for i, a := range colnames {
		if a == "" {
			missingnames = append(missingnames, i)
			continue
		}
		dupnamesidx[a] = append(dupnamesidx[a], i)
	}

	counter := 0
	for _, i := range missingnames {
		proposedName := fmt.Sprintf("X%d", counter)
		for findInStringSlice(proposedName, colnames) != -1 {
			counter++
			proposedName = fmt.Sprintf("X%d", counter)
		}
		colnames[i] = proposedName
		counter++
	}

	var keys []string
	for k, places := range dupnamesidx {
		if len(places) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	for _, name := range keys {
		counter := 0
		for _, i := range dupnamesidx[name] {
			proposedName := fmt.Sprintf("%s_%d", name, counter)
			for findInStringSlice(proposedName, colnames) != -1 {
				counter++
				proposedName = fmt.Sprintf("%s_%d", name, counter)
			}
			colnames[i] = proposedName
			counter++
		}
	}
}

// findInStringSlice 在字符串切片中查找指定字符串的索引，找不到返回 -1。
func findInStringSlice(str string, s []string) int {
	for i, e := range s {
		if e == str {
			return i
		}
	}
	return -1
}

// parseSelectIndexes 解析选择的索引，返回索引的整数切片。
func parseSelectIndexes(l int, indexes SelectIndexes, colnames []string) ([]int, error) {
	var idx []int
	switch v := indexes.(type) {
	case []int:
		idx = v
	case int:
		idx = []int{v}
	case []bool:
		if len(v) != l {
			return nil, fmt.Errorf("索引错误：索引维度不匹配")
		}
		for i, b := range v {
			if b {
				idx = append(idx, i)
			}
		}
	case string:
		i := findInStringSlice(v, colnames)
		if i < 0 {
			return nil, &UnknownColumnError{Name: v}
		}
		idx = append(idx, i)
	case []string:
		for _, s := range v {
			i := findInStringSlice(s, colnames)
			if i < 0 {
				return nil, &UnknownColumnError{Name: s}
			}
			idx = append(idx, i)
		}
	default:
		return nil, fmt.Errorf("索引错误：未知的索引模式")
	}
	return idx, nil
}

// transposeRecords 转置二维字符串切片。
func transposeRecords(x [][]string) [][]string {
	n := len(x)
	if n == 0 {
		return x
	}
	m := len(x[0])
	y := make([][]string, m)
	for i := 0; i < m; i++ {
		z := make([]string, n)
		for j := 0; j < n; j++ {
			z[j] = x[j][i]
		}
		y[i] = z
	}
	return y
}

// inIntSlice 检查整数是否存在于整数切片中。
func inIntSlice(i int, is []int) bool {
	for _, v := range is {
		if v == i {
			return true
		}
	}
	return false
}
