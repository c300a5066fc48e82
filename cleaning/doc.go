/*
Package cleaning 提供基于 dataframe.DataFrame 的数据清洗函数：
统计每列不同取值的个数、按映射表替换取值、汇总缺失率、
按缺失阈值删除列或行，以及用众数填补缺失值。

所有函数都不修改输入的 DataFrame，而是返回新的 DataFrame。
函数之间互不依赖，也不保存任何跨调用的状态，可以被并发调用。
Pipeline 把这些函数组合成按顺序执行的步骤，RunAll 可以并发处理多个 DataFrame。

注意阈值的单位：DropColumnsMissing 和 DropRowsMissing 的 threshold
是 [0,1] 区间内的比例，而 SummarizeMissing 输出的 missing_pct 是百分比。
*/
package cleaning
