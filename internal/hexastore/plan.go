package hexastore

// plan is how a query pattern is answered: a point lookup of one key, or a
// range scan over every key starting with prefix.
type plan struct {
	order  Order
	prefix []byte
	point  bool
}

// planQuery picks the one order whose leading roles are exactly the bound
// ones.
//
//	s p o   order  prefix
//	+ + +   spo    point lookup
//	+ + *   spo    s p
//	+ * +   sop    s o
//	* + +   pos    p o
//	+ * *   spo    s
//	* + *   pso    p
//	* * +   osp    o
//	* * *   spo    (whole order)
func planQuery(s, p, o Term) plan {
	switch {
	case s.bound && p.bound && o.bound:
		t := Triple{Subject: s.value, Predicate: p.value, Object: o.value}
		return plan{order: SPO, prefix: encodeKey(SPO, t), point: true}
	case s.bound && p.bound:
		return plan{order: SPO, prefix: appendPrefix(SPO, s.value, p.value)}
	case s.bound && o.bound:
		return plan{order: SOP, prefix: appendPrefix(SOP, s.value, o.value)}
	case p.bound && o.bound:
		return plan{order: POS, prefix: appendPrefix(POS, p.value, o.value)}
	case s.bound:
		return plan{order: SPO, prefix: appendPrefix(SPO, s.value)}
	case p.bound:
		return plan{order: PSO, prefix: appendPrefix(PSO, p.value)}
	case o.bound:
		return plan{order: OSP, prefix: appendPrefix(OSP, o.value)}
	default:
		return plan{order: SPO, prefix: appendPrefix(SPO)}
	}
}
