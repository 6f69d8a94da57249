package domain

var Tables = []interface{}{
	// System
	&SysConfig{},
	// Point of sale
	&Product{},
	&Order{},
	&OrderItem{},
	&Purchase{},
	&Customer{},
}
