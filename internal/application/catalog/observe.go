package catalog

import (
	"context"

	"go.uber.org/zap"

	"github.com/xiebiao/bookcatalog/internal/domain/event"
	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
	"github.com/xiebiao/bookcatalog/pkg/logger"
	"github.com/xiebiao/bookcatalog/pkg/metrics"
)

const tracerName = "bookcatalog/catalog"

// 删除方式(指标标签)
const (
	modeSingle = "single"
	modeMany   = "many"
	modeAll    = "all"
)

// ErrEmptyIDList 批量删除没有给出任何id
// 清空整表必须走单独的DeleteAll,不能由空列表隐式触发
var ErrEmptyIDList = apperrors.ErrInvalidParams.WithMessage("listIds不能为空")

// paginate 规范化查询参数后执行list并组装分页结果
func paginate[T any](ctx context.Context, raw listing.RawQuery, list func(context.Context, listing.Filter) ([]T, int64, error)) (*listing.Page[T], error) {
	f := listing.Normalize(raw)
	items, total, err := list(ctx, f)
	if err != nil {
		return nil, err
	}
	return listing.NewPage(items, f, total), nil
}

// recordDeleted 删除成功后记录指标、日志并发布事件
func recordDeleted(ctx context.Context, events event.Publisher, resource, mode string, ids []uint, affected int64) {
	metrics.RecordDelete(resource, mode, affected)

	action := event.ActionDeleted
	if mode == modeAll {
		action = event.ActionWiped
	}
	logger.FromContext(ctx).Info("目录记录已删除",
		zap.String("resource", resource),
		zap.String("mode", mode),
		zap.Int("ids", len(ids)),
		zap.Int64("affected", affected),
	)

	e := event.New(resource, action, ids...)
	e.Affected = affected
	events.Publish(ctx, e)
}

func publishCreated(ctx context.Context, events event.Publisher, resource string, id uint) {
	e := event.New(resource, event.ActionCreated, id)
	e.Affected = 1
	events.Publish(ctx, e)
}

func validateIDs(ids []uint) error {
	if len(ids) == 0 {
		return ErrEmptyIDList
	}
	return nil
}
