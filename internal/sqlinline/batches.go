package sqlinline

const QCreateBatchesTable = `--sql 91001134-1e01-4575-8dfd-1124e7dd39c4
create table if not exists onmodel_batches (
  id            text primary key,
  request_id    text not null default '',
  params        jsonb not null,
  results       jsonb not null,
  reference_key text not null default '',
  succeeded     int not null default 0,
  failed        int not null default 0,
  created_at    timestamptz not null default now(),
  expires_at    timestamptz
);
`

const QInsertBatch = `--sql 2e4d9df5-9bc8-4391-9141-265ca80f836d
insert into onmodel_batches (id, request_id, params, results, succeeded, failed, created_at, expires_at, reference_key)
values ($1, $2, $3::jsonb, $4::jsonb, $5, $6, $7, $8, $9)
on conflict (id) do update
set results    = excluded.results,
    succeeded  = excluded.succeeded,
    failed     = excluded.failed,
    expires_at = excluded.expires_at;
`

const QGetBatch = `--sql c3af2ef5-1a65-4046-becd-778b57e126d6
select id, request_id, params, results, reference_key, created_at
from onmodel_batches
where id = $1
  and (expires_at is null or expires_at > now());
`

const QPurgeExpiredBatches = `--sql ba4b01b1-4ceb-4347-8085-dda9404fa61c
delete from onmodel_batches
where expires_at is not null
  and expires_at <= now();
`
