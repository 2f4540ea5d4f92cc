package repository

import (
	"context"
	"fmt"
	"strconv"

	"storefront-service/internal/apper"
	"storefront-service/internal/models"
)

type apperProductRepo struct {
	client apper.Client
}

func NewApperProductRepository(client apper.Client) ProductRepository {
	return &apperProductRepo{client: client}
}

var productFields = apper.Fields(
	colName,
	colDescription,
	colPrice,
	colOriginalPrice,
	colCategory,
	colImages,
	colRating,
	colStock,
	colSizes,
	colColors,
	colFeatured,
	colTags,
)

func (r *apperProductRepo) GetAll(ctx context.Context, f ProductFilter) ([]models.Product, error) {
	params := apper.FetchParams{
		Fields:     productFields,
		Where:      []apper.Condition{},
		PagingInfo: &apper.PagingInfo{Limit: productListLimit},
	}

	if len(f.Categories) > 0 {
		params.Where = append(params.Where, exactMatch(colCategory, stringValues(f.Categories)...))
	}

	if f.Search != "" {
		params.WhereGroups = append(params.WhereGroups, apper.WhereGroup{
			Operator: "OR",
			SubGroups: []apper.SubGroup{{
				Operator: "OR",
				Conditions: []apper.GroupCondition{
					{FieldName: colName, Operator: apper.OpContains, Values: []any{f.Search}},
					{FieldName: colDescription, Operator: apper.OpContains, Values: []any{f.Search}},
					{FieldName: colCategory, Operator: apper.OpContains, Values: []any{f.Search}},
				},
			}},
		})
	}

	if f.MinPrice != nil {
		params.Where = append(params.Where, apper.Condition{
			FieldName: colPrice,
			Operator:  apper.OpGreaterThanOrEqualTo,
			Values:    []any{formatPrice(*f.MinPrice)},
			Include:   true,
		})
	}
	if f.MaxPrice != nil {
		params.Where = append(params.Where, apper.Condition{
			FieldName: colPrice,
			Operator:  apper.OpLessThanOrEqualTo,
			Values:    []any{formatPrice(*f.MaxPrice)},
			Include:   true,
		})
	}

	if len(f.Sizes) > 0 {
		params.Where = append(params.Where, apper.Condition{
			FieldName: colSizes, Operator: apper.OpContains, Values: stringValues(f.Sizes), Include: true,
		})
	}
	if len(f.Colors) > 0 {
		params.Where = append(params.Where, apper.Condition{
			FieldName: colColors, Operator: apper.OpContains, Values: stringValues(f.Colors), Include: true,
		})
	}

	if f.Sale {
		params.WhereGroups = append(params.WhereGroups, apper.WhereGroup{
			Operator: "AND",
			SubGroups: []apper.SubGroup{{
				Operator: "AND",
				Conditions: []apper.GroupCondition{
					{FieldName: colOriginalPrice, Operator: apper.OpHasValue, Values: []any{""}},
					{FieldName: colPrice, Operator: apper.OpLessThan, Values: []any{colOriginalPrice}},
				},
			}},
		})
	}

	params.OrderBy = productOrderBy(f.SortBy)

	return r.list(ctx, params)
}

func productOrderBy(sort SortBy) []apper.OrderBy {
	switch sort {
	case SortPriceLow:
		return []apper.OrderBy{{FieldName: colPrice, SortType: apper.SortAsc}}
	case SortPriceHigh:
		return []apper.OrderBy{{FieldName: colPrice, SortType: apper.SortDesc}}
	case SortName:
		return []apper.OrderBy{{FieldName: colName, SortType: apper.SortAsc}}
	case SortRating:
		return []apper.OrderBy{{FieldName: colRating, SortType: apper.SortDesc}}
	case SortNewest:
		return newestFirst()
	}
	return nil
}

func (r *apperProductRepo) GetByID(ctx context.Context, id int) (*models.Product, error) {
	rec, err := fetchByID(ctx, r.client, tableProducts, id, apper.FetchParams{Fields: productFields})
	if err != nil {
		return nil, err
	}
	p := productFromRecord(rec)
	return &p, nil
}

func (r *apperProductRepo) GetFeatured(ctx context.Context, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	return r.list(ctx, apper.FetchParams{
		Fields:     productFields,
		Where:      []apper.Condition{exactMatch(colFeatured, true)},
		PagingInfo: &apper.PagingInfo{Limit: limit},
	})
}

func (r *apperProductRepo) GetByCategory(ctx context.Context, category string) ([]models.Product, error) {
	if category == "" {
		return nil, fmt.Errorf("%w: category cannot be empty", ErrInvalidInput)
	}
	return r.list(ctx, apper.FetchParams{
		Fields: productFields,
		Where:  []apper.Condition{exactMatch(colCategory, category)},
	})
}

func (r *apperProductRepo) GetRelated(ctx context.Context, productID int, limit int) ([]models.Product, error) {
	if limit <= 0 {
		limit = DefaultRelatedLimit
	}

	current, err := r.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}

	return r.list(ctx, apper.FetchParams{
		Fields: productFields,
		Where: []apper.Condition{
			exactMatch(colCategory, current.Category),
			{FieldName: apper.FieldID, Operator: apper.OpNotEqualTo, Values: []any{strconv.Itoa(productID)}, Include: true},
		},
		PagingInfo: &apper.PagingInfo{Limit: limit},
	})
}

func (r *apperProductRepo) list(ctx context.Context, params apper.FetchParams) ([]models.Product, error) {
	records, err := fetch(ctx, r.client, tableProducts, params)
	if err != nil {
		return nil, err
	}
	products := make([]models.Product, 0, len(records))
	for _, rec := range records {
		products = append(products, productFromRecord(rec))
	}
	return products, nil
}

func productFromRecord(rec apper.Record) models.Product {
	p := models.Product{
		ProductID:     recordInt(rec[apper.FieldID]),
		Name:          recordString(rec[colName]),
		Description:   recordString(rec[colDescription]),
		Price:         recordFloat(rec[colPrice]),
		OriginalPrice: recordOptionalFloat(rec[colOriginalPrice]),
		Category:      recordString(rec[colCategory]),
		Images:        recordList(rec[colImages]),
		Rating:        recordFloat(rec[colRating]),
		Stock:         recordInt(rec[colStock]),
		Sizes:         recordList(rec[colSizes]),
		Featured:      recordBool(rec[colFeatured]),
		Tags:          recordList(rec[colTags]),
		CreatedAt:     recordTime(rec[apper.FieldCreatedOn]),
	}
	names := recordList(rec[colColors])
	p.Colors = make([]models.Color, 0, len(names))
	for _, name := range names {
		p.Colors = append(p.Colors, models.NewColor(name))
	}
	return p
}

func stringValues(in []string) []any {
	out := make([]any, 0, len(in))
	for _, s := range in {
		out = append(out, s)
	}
	return out
}

func formatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
