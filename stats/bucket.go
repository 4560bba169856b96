package stats

import "sort"

// 每系列損益（除以 betUnit 後）的分桶右邊界，右開。
//
// 一個系列最多輸 35*(retry+1) 單位、最多贏「位置數」單位。
var plEdges = []int{-105, -70, -35, 0, 1, 6, 11, 21}

var plBucketStr = []string{"(-inf,-105)", "[-105,-70)", "[-70,-35)", "[-35,0)", "[0,0]", "[1,5]", "[6,10]", "[11,20]", "[21,+inf)"}

// BucketLabels 回傳分桶標籤
func BucketLabels() []string {
	return plBucketStr
}

// bucketIndex 回傳單位損益 units 所屬分桶
func bucketIndex(units int) int {
	return sort.Search(len(plEdges), func(i int) bool { return units < plEdges[i] })
}
