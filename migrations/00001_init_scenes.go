package migration

import (
	"database/sql"

	"github.com/pressly/goose"
)

func init() {
	goose.AddMigration(Up00001, Down00001)
}

//Up00001 creates the local scene index table
func Up00001(tx *sql.Tx) error {
	// This code is executed when the migration is applied.

	err := addTables(tx)

	if err == nil {
		err = addIndexes(tx)
	}

	return err
}

//Down00001 undoes the db changes.
func Down00001(tx *sql.Tx) error {
	// This code is executed when the migration is rolled back.
	_, err := tx.Exec(`DROP TABLE IF EXISTS public.scenes;`)
	return err
}

func addTables(tx *sql.Tx) error {
	_, err := tx.Exec(`
	CREATE TABLE public.scenes
	(
		product_id text COLLATE pg_catalog."default" NOT NULL,
		acquisition_date timestamp without time zone NOT NULL,
		sensor_name text COLLATE pg_catalog."default" NOT NULL,
		solar_zenith real NOT NULL,
		esun jsonb NOT NULL,
		min_lon double precision NOT NULL,
		min_lat double precision NOT NULL,
		max_lon double precision NOT NULL,
		max_lat double precision NOT NULL,
		CONSTRAINT "scenes_pk_productId" PRIMARY KEY (product_id)
	)
	WITH (
		OIDS = FALSE
	);
		`)

	return err
}

func addIndexes(tx *sql.Tx) error {
	_, err := tx.Exec(`
		CREATE INDEX idx_scenes_acquisition_date
		ON public.scenes (acquisition_date);

		CREATE INDEX idx_scenes_bounds
		ON public.scenes (min_lon, max_lon, min_lat, max_lat);
		`)

	return err
}
