package ioschema

import (
	"fmt"

	"github.com/canerbagci/bgcatlas/pkg/errcode"
	"github.com/gnames/gn"
)

func NotConnectedError() error {
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  "Schema operation attempted without database connection",
		Err:  fmt.Errorf("not connected to database"),
	}
}

func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database configuration`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

func CreateSchemaError(err error) error {
	msg := `Cannot create database schema

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Check database logs for details`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to create schema: %w", err),
	}
}

func MigrateSchemaError(err error) error {
	msg := `Cannot migrate database schema

<em>How to fix:</em>
  1. Check database user has ALTER permissions
  2. Recreate the schema with <em>bgcatlas create --force</em>`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Err:  fmt.Errorf("failed to migrate schema: %w", err),
	}
}
