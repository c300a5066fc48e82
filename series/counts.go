package series

// Count 记录一个不同取值及其出现次数。
type Count struct {
	Value Value
	N     int
}

// ValueCounts 返回每个不同取值的出现次数，按首次出现的顺序排列。
// dropna 为 false 时缺失值也作为一个类别计数。
func (s Series) ValueCounts(dropna bool) []Count {
	var counts []Count
	pos := make(map[Key]int)
	for _, v := range s.values {
		if dropna && v.IsNA() {
			continue
		}
		k := v.Key()
		if i, ok := pos[k]; ok {
			counts[i].N++
			continue
		}
		pos[k] = len(counts)
		counts = append(counts, Count{Value: v, N: 1})
	}
	return counts
}

// Mode 返回出现次数最多的非缺失值。多个取值次数相同时返回最先出现的那个。
// 所有元素都缺失时第二个返回值为 false。
func (s Series) Mode() (Value, bool) {
	best := -1
	counts := s.ValueCounts(true)
	for i, c := range counts {
		if best == -1 || c.N > counts[best].N {
			best = i
		}
	}
	if best == -1 {
		return NA(), false
	}
	return counts[best].Value, true
}

// FillNaN 返回把缺失元素替换为 v 的副本。v 会先转换为 Series 的类型。
func (s Series) FillNaN(v Value) Series {
	ret := s.Copy()
	fill := v.As(s.t)
	for i, e := range ret.values {
		if e.IsNA() {
			ret.values[i] = fill
		}
	}
	return ret
}

// Replace 返回按照 m 替换元素后的新 Series，并重新推断列类型。
// 键为 NA().Key() 的条目用于替换缺失元素。
func (s Series) Replace(m map[Key]Value) Series {
	vals := s.Values()
	for i, v := range vals {
		if nv, ok := m[v.Key()]; ok {
			vals[i] = nv
		}
	}
	return InferAs(vals, s.Name, s.t)
}
