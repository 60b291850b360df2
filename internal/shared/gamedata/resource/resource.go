package resource

// Kind 资源种类。
type Kind string

const (
	Gold  Kind = "gold"
	Wood  Kind = "wood"
	Stone Kind = "stone"
	Food  Kind = "food"
)

// Kinds 返回全部资源种类（顺序固定）。
func Kinds() []Kind {
	return []Kind{Gold, Wood, Stone, Food}
}

// Valid 判断是否为合法资源种类。
func Valid(k Kind) bool {
	switch k {
	case Gold, Wood, Stone, Food:
		return true
	}
	return false
}

// Basket 是一组资源数量。零值可直接使用（视为空篮子）。
type Basket map[Kind]int64

// Clone 深拷贝，避免共享底层 map。
func (b Basket) Clone() Basket {
	out := make(Basket, len(b))
	for k, v := range b {
		out[k] = v
	}
	return out
}

// Get 读取某项资源数量，缺项视为 0。
func (b Basket) Get(k Kind) int64 {
	return b[k]
}

// CanAfford 判断是否足以支付 cost 的每一项。
func (b Basket) CanAfford(cost Basket) bool {
	for k, v := range cost {
		if b[k] < v {
			return false
		}
	}
	return true
}

// Sub 逐项扣减，单项最低扣到 0。返回新篮子，不修改原值。
func (b Basket) Sub(cost Basket) Basket {
	out := b.Clone()
	for k, v := range cost {
		out[k] -= v
		if out[k] < 0 {
			out[k] = 0
		}
	}
	return out
}

// Total 全部资源数量之和。
func (b Basket) Total() int64 {
	var sum int64
	for _, v := range b {
		sum += v
	}
	return sum
}

// Add 逐项累加。返回新篮子，不修改原值。
func (b Basket) Add(delta Basket) Basket {
	out := b.Clone()
	for k, v := range delta {
		out[k] += v
	}
	return out
}
