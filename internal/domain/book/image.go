package book

// ImageUpdate 把已有图片行改写为新地址
type ImageUpdate struct {
	ID     uint
	Source string
}

// ImagePlan 图片调整计划
// 执行顺序无关:Update只改写被淘汰的行,Add和Remove互不重叠
type ImagePlan struct {
	Add    []string
	Update []ImageUpdate
	Remove []uint
}

// Empty 计划为空时不需要任何写操作
func (p ImagePlan) Empty() bool {
	return len(p.Add) == 0 && len(p.Update) == 0 && len(p.Remove) == 0
}

// ReconcileImages 对比现有图片与期望的地址列表
// 规则:
// 1. 期望列表中重复的地址只保留一份
// 2. 现有行的地址仍在期望列表中则保留(重复行只保留第一条)
// 3. 被淘汰的行优先原地改写为新地址,多出来的新地址新增,多出来的旧行删除
func ReconcileImages(existing []Image, incoming []string) ImagePlan {
	want := make(map[string]bool, len(incoming))
	for _, src := range incoming {
		want[src] = true
	}

	kept := make(map[string]bool, len(existing))
	var retired []Image
	for _, img := range existing {
		if want[img.Source] && !kept[img.Source] {
			kept[img.Source] = true
			continue
		}
		retired = append(retired, img)
	}

	var added []string
	for _, src := range incoming {
		if kept[src] {
			continue
		}
		// 同时标记为已处理,去掉incoming里的重复项
		kept[src] = true
		added = append(added, src)
	}

	var plan ImagePlan
	for i, src := range added {
		if i < len(retired) {
			plan.Update = append(plan.Update, ImageUpdate{ID: retired[i].ID, Source: src})
			continue
		}
		plan.Add = append(plan.Add, src)
	}
	for i := len(added); i < len(retired); i++ {
		plan.Remove = append(plan.Remove, retired[i].ID)
	}
	return plan
}
