package database

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xiebiao/bookcatalog/internal/domain/listing"
	"github.com/xiebiao/bookcatalog/internal/domain/patch"
	apperrors "github.com/xiebiao/bookcatalog/pkg/errors"
)

var errUnknownSortField = apperrors.ErrInvalidParams.WithMessage("不支持的排序字段")

// likeEscaper 搜索词按字面匹配,%和_不能作为通配符
// 转义符用!而不是反斜杠,MySQL字符串字面量里反斜杠本身也需要转义
var likeEscaper = strings.NewReplacer("!", "!!", "%", "!%", "_", "!_")

// column 领域字段名转列名(firstName → first_name)
// 使用GORM自身的命名策略,与模型字段的列名保持一致
func column(db *gorm.DB, field string) clause.Column {
	return clause.Column{Name: db.NamingStrategy.ColumnName("", field)}
}

// applyFilter 把谓词中的条件翻译为WHERE子句
// 列名通过clause.Column引用,始终按标识符转义,不会拼接进SQL
func applyFilter(db *gorm.DB, pred listing.Predicate) *gorm.DB {
	for _, c := range pred.All {
		db = db.Where(toExpression(db, c))
	}

	if len(pred.Any) > 0 {
		exprs := make([]clause.Expression, 0, len(pred.Any))
		for _, c := range pred.Any {
			exprs = append(exprs, toExpression(db, c))
		}
		db = db.Where(clause.Or(exprs...))
	}
	return db
}

func toExpression(db *gorm.DB, c listing.Condition) clause.Expression {
	col := column(db, c.Field)
	switch c.Op {
	case listing.OpContains:
		pattern := "%" + likeEscaper.Replace(c.Value.(string)) + "%"
		return clause.Expr{SQL: "? LIKE ? ESCAPE '!'", Vars: []interface{}{col, pattern}}
	case listing.OpGte:
		return clause.Gte{Column: col, Value: c.Value}
	case listing.OpLte:
		return clause.Lte{Column: col, Value: c.Value}
	default:
		return clause.Eq{Column: col, Value: c.Value}
	}
}

// applyPage 排序与分页
// 排序列相同时按id再排一次,保证翻页结果稳定
func applyPage(db *gorm.DB, pred listing.Predicate) *gorm.DB {
	desc := pred.Sort.Order != listing.SortAsc
	sortCol := column(db, pred.Sort.Field)

	db = db.Order(clause.OrderByColumn{Column: sortCol, Desc: desc})
	if sortCol.Name != "id" {
		db = db.Order(clause.OrderByColumn{Column: clause.Column{Name: "id"}, Desc: desc})
	}
	return db.Offset(pred.Offset).Limit(pred.Limit)
}

// listModels 计数与分页查询使用同一个谓词
// scopes只作用于取数据的查询（如Preload），不影响计数
func listModels[M any](db *gorm.DB, pred listing.Predicate, scopes ...func(*gorm.DB) *gorm.DB) ([]M, int64, error) {
	// sortBy来自查询参数，排序列必须是模型上真实存在的字段
	stmt := &gorm.Statement{DB: db}
	if err := stmt.Parse(new(M)); err != nil {
		return nil, 0, err
	}
	if stmt.Schema.LookUpField(column(db, pred.Sort.Field).Name) == nil {
		return nil, 0, errUnknownSortField
	}

	var total int64
	if err := applyFilter(db.Model(new(M)), pred).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	query := applyPage(applyFilter(db.Model(new(M)), pred), pred)

	var models []M
	if err := query.Scopes(scopes...).Find(&models).Error; err != nil {
		return nil, 0, err
	}
	return models, total, nil
}

// updateColumns 只更新变更集中的列,updated_at由GORM自动维护
func updateColumns[M any](db *gorm.DB, id uint, changes patch.Set) (int64, error) {
	values := make(map[string]interface{}, len(changes))
	for field, v := range changes {
		values[column(db, field).Name] = v
	}
	result := db.Model(new(M)).Where("id = ?", id).Updates(values)
	return result.RowsAffected, result.Error
}

func deleteByIDs[M any](db *gorm.DB, ids []uint) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	result := db.Where("id IN ?", ids).Delete(new(M))
	return result.RowsAffected, result.Error
}

// deleteAll 清空整张表
// GORM默认拒绝不带条件的DELETE,这里显式打开AllowGlobalUpdate
func deleteAll[M any](db *gorm.DB) (int64, error) {
	result := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(new(M))
	return result.RowsAffected, result.Error
}
