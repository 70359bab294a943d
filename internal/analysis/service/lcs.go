package service

func lcsLength(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	al, bl := len(ra), len(rb)

	dp := make([][]int, al+1)
	for i := 0; i <= al; i++ {
		dp[i] = make([]int, bl+1)
	}

	for i := 1; i <= al; i++ {
		for j := 1; j <= bl; j++ {
			if ra[i-1] == rb[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else {
				dp[i][j] = max(dp[i-1][j], dp[i][j-1])
			}
		}
	}
	return dp[al][bl]
}

// lcsRatio — normalized longest-common-subsequence similarity in [0..1]:
// 2*LCS / (len(a)+len(b)).
func lcsRatio(a, b string) float64 {
	ra := len([]rune(a))
	rb := len([]rune(b))
	if ra+rb == 0 {
		return 1
	}
	return 2 * float64(lcsLength(a, b)) / float64(ra+rb)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
