// Copyright (c) 2018 The VeChainThor developers

// Distributed under the GNU Lesser General Public License v3.0 software license, see the accompanying
// file LICENSE or <https://www.gnu.org/licenses/lgpl-3.0.html>

package logdb

// create a table for generator events
const eventTableSchema = `
CREATE TABLE IF NOT EXISTS event (
	seq INTEGER PRIMARY KEY NOT NULL,
	blockNumber INTEGER NOT NULL,
	eventIndex INTEGER NOT NULL,
	name TEXT NOT NULL,
	owner BLOB(20) NOT NULL,
	tokenID BLOB(8),
	amount TEXT
);

CREATE INDEX IF NOT EXISTS event_i_owner ON event(owner, seq);
CREATE INDEX IF NOT EXISTS event_i_token ON event(tokenID, seq);
CREATE INDEX IF NOT EXISTS event_i_name ON event(name, seq);
`
