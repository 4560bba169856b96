package wheel

// Color 輪盤格的顏色
type Color string

const (
	Green Color = "green"
	Red   Color = "red"
	Black Color = "black"
)

// Parity 奇偶
type Parity string

const (
	Even Parity = "even"
	Odd  Parity = "odd"
)

// Range 高低區（0 不屬於任一區）
type Range string

const (
	NoRange Range = ""
	Low     Range = "low"
	High    Range = "high"
)

// Pocket 開出號碼的衍生屬性，只用於顯示。
type Pocket struct {
	Number int    `json:"number" yaml:"number"`
	Color  Color  `json:"color" yaml:"color"`
	Parity Parity `json:"parity" yaml:"parity"`
	Range  Range  `json:"range,omitempty" yaml:"range,omitempty"`
}

// Describe 依單零輪盤配置計算顏色、奇偶與高低區。
//
// 1..10 與 19..28：奇數紅、偶數黑；11..18 與 29..36 相反。0 為綠色。
func Describe(n int) Pocket {
	p := Pocket{Number: n, Parity: Odd, Range: NoRange}
	if n%2 == 0 {
		p.Parity = Even
	}
	switch {
	case n == 0:
		p.Color = Green
	case (n >= 1 && n <= 10) || (n >= 19 && n <= 28):
		p.Color = Red
		if n%2 == 0 {
			p.Color = Black
		}
	default:
		p.Color = Black
		if n%2 == 0 {
			p.Color = Red
		}
	}
	switch {
	case n >= 1 && n <= 18:
		p.Range = Low
	case n >= 19 && n <= 36:
		p.Range = High
	}
	return p
}
