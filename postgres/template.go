package postgres

import (
	"context"
	"errors"

	"github.com/fieldsafe/safecheck"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

// Compile-time interface check
var _ safecheck.TemplateService = (*TemplateService)(nil)

// TemplateService is a PostgreSQL implementation of safecheck.TemplateService.
// Checklist items live in a jsonb column; document order is item order.
type TemplateService struct {
	db *DB
}

const templateColumns = `id, name, description, items, created_at, updated_at`

func scanTemplate(row pgx.Row) (*safecheck.Template, error) {
	var t safecheck.Template
	var items []byte
	err := row.Scan(&t.ID, &t.Name, &t.Description, &items, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	if t.Items, err = itemsFromJSONB(items); err != nil {
		return nil, err
	}
	return &t, nil
}

func (s *TemplateService) FindTemplateByID(ctx context.Context, id uuid.UUID) (*safecheck.Template, error) {
	row := s.db.pool.QueryRow(ctx,
		`SELECT `+templateColumns+` FROM templates WHERE id = $1`, id)

	template, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("Template not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to find template", err)
	}
	return template, nil
}

func (s *TemplateService) FindTemplates(ctx context.Context, filter safecheck.TemplateFilter) ([]*safecheck.Template, int, error) {
	where, args := buildWhere(map[string]any{
		"id": ptrArg(filter.ID),
	})

	var total int
	if err := s.db.pool.QueryRow(ctx, `SELECT count(*) FROM templates`+where, args...).Scan(&total); err != nil {
		return nil, 0, safecheck.Internal("Failed to count templates", err)
	}

	query := `SELECT ` + templateColumns + ` FROM templates` + where +
		` ORDER BY created_at DESC` + limitOffset(filter.Limit, filter.Offset)
	rows, err := s.db.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, safecheck.Internal("Failed to list templates", err)
	}
	defer rows.Close()

	templates := []*safecheck.Template{}
	for rows.Next() {
		template, err := scanTemplate(rows)
		if err != nil {
			return nil, 0, safecheck.Internal("Failed to scan template", err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, safecheck.Internal("Failed to list templates", err)
	}
	return templates, total, nil
}

func (s *TemplateService) CreateTemplate(ctx context.Context, template *safecheck.Template) error {
	if err := template.Validate(); err != nil {
		return err
	}

	items, err := toJSONB(template.Items)
	if err != nil {
		return safecheck.Internal("Failed to encode template items", err)
	}

	row := s.db.pool.QueryRow(ctx,
		`INSERT INTO templates (id, name, description, items)
		 VALUES (gen_random_uuid(), $1, $2, $3)
		 RETURNING `+templateColumns,
		template.Name, template.Description, items)

	created, err := scanTemplate(row)
	if err != nil {
		return safecheck.Internal("Failed to create template", err)
	}
	*template = *created
	return nil
}

func (s *TemplateService) UpdateTemplate(ctx context.Context, id uuid.UUID, upd safecheck.TemplateUpdate) (*safecheck.Template, error) {
	var items []byte
	if upd.Items != nil {
		if err := safecheck.ValidateItems(*upd.Items); err != nil {
			return nil, err
		}
		var err error
		if items, err = toJSONB(*upd.Items); err != nil {
			return nil, safecheck.Internal("Failed to encode template items", err)
		}
	}

	row := s.db.pool.QueryRow(ctx,
		`UPDATE templates SET
		   name        = COALESCE($2, name),
		   description = COALESCE($3, description),
		   items       = COALESCE($4, items),
		   updated_at  = now()
		 WHERE id = $1
		 RETURNING `+templateColumns,
		id, upd.Name, upd.Description, items)

	template, err := scanTemplate(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, safecheck.NotFound("Template not found")
	} else if err != nil {
		return nil, safecheck.Internal("Failed to update template", err)
	}
	return template, nil
}

func (s *TemplateService) DeleteTemplate(ctx context.Context, id uuid.UUID) error {
	tag, err := s.db.pool.Exec(ctx, `DELETE FROM templates WHERE id = $1`, id)
	if err != nil {
		return safecheck.Internal("Failed to delete template", err)
	}
	if tag.RowsAffected() == 0 {
		return safecheck.NotFound("Template not found")
	}
	return nil
}
