package permission

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/helpdeskhq/helpdesk/internal/shared/logger"
)

func setupEnforcer(t *testing.T) (*Enforcer, *gorm.DB) {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	e, err := NewEnforcer(db, logger.NewNopLogger())
	require.NoError(t, err)
	require.NoError(t, e.Seed())
	return e, db
}

func TestEnforcer_DefaultPolicies(t *testing.T) {
	e, _ := setupEnforcer(t)

	tests := []struct {
		role     string
		resource string
		action   string
		want     bool
	}{
		{"USER", ResourceTicket, ActionCreate, true},
		{"USER", ResourceTicket, ActionAssign, false},
		{"USER", ResourceTicket, ActionDelete, false},
		{"USER", ResourceFileOrg, ActionManage, false},
		{"AGENT", ResourceTicket, ActionCreate, true},
		{"AGENT", ResourceTicket, ActionAssign, true},
		{"AGENT", ResourceTicket, ActionDelete, false},
		{"AGENT", ResourceAuditLog, ActionRead, false},
		{"ADMIN", ResourceTicket, ActionDelete, true},
		{"ADMIN", ResourceTicket, ActionAssign, true},
		{"ADMIN", ResourceComment, ActionCreate, true},
		{"ADMIN", ResourceAuditLog, ActionRead, true},
		{"", ResourceTicket, ActionRead, false},
	}
	for _, tt := range tests {
		t.Run(tt.role+"/"+tt.resource+"/"+tt.action, func(t *testing.T) {
			got, err := e.Enforce(tt.role, tt.resource, tt.action)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEnforcer_SeedIsIdempotentAndPersistent(t *testing.T) {
	e, db := setupEnforcer(t)
	require.NoError(t, e.Seed())

	var count int64
	require.NoError(t, db.Table("casbin_rule").Count(&count).Error)
	assert.Equal(t, int64(len(DefaultPolicies())+len(DefaultRoleHierarchy())), count)

	require.NoError(t, e.AddPolicy("USER", ResourceAuditLog, ActionRead))
	reloaded, err := NewEnforcer(db, logger.NewNopLogger())
	require.NoError(t, err)
	allowed, err := reloaded.Enforce("USER", ResourceAuditLog, ActionRead)
	require.NoError(t, err)
	assert.True(t, allowed)

	require.NoError(t, reloaded.RemovePolicy("USER", ResourceAuditLog, ActionRead))
	require.NoError(t, e.LoadPolicy())
	allowed, err = e.Enforce("USER", ResourceAuditLog, ActionRead)
	require.NoError(t, err)
	assert.False(t, allowed)
}
