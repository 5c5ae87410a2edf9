// Package models contains the GORM persistence models of the invoicing
// schema. Domain entities stay free of ORM tags; each model converts to and
// from its entity with ToDomain / FromDomain.
//
// Column types mirror the SQL migrations: money is DECIMAL(15,2), quantity
// DECIMAL(12,3), rates DECIMAL(5,2) and validity bounds are DATE.
package models
