// Package app — migrations.go содержит SQL-миграции схемы.
// Миграции встроены в код для упрощения деплоя.
package app

import "github.com/BlqckRiad/CepteMotivasyon/internal/db/postgres"

// migrations применяются по порядку, каждая один раз.
var migrations = []postgres.Migration{
	{Version: 1, SQL: migration001Profiles},
	{Version: 2, SQL: migration002Tasks},
	{Version: 3, SQL: migration003Badges},
	{Version: 4, SQL: migration004Points},
	{Version: 5, SQL: migration005Market},
	{Version: 6, SQL: migration006Notes},
	{Version: 7, SQL: migration007Admin},
	{Version: 8, SQL: migration008Seed},
	{Version: 9, SQL: migration009EducationContact},
}

// profiles.id совпадает с id пользователя в Supabase Auth.
var migration001Profiles = `
CREATE TABLE IF NOT EXISTS profiles (
    id UUID PRIMARY KEY,
    username VARCHAR(255) NOT NULL DEFAULT '',
    user_streak INTEGER NOT NULL DEFAULT 0,
    longest_streak INTEGER NOT NULL DEFAULT 0,
    completed_tasks INTEGER NOT NULL DEFAULT 0,
    achievement_points BIGINT NOT NULL DEFAULT 0 CHECK (achievement_points >= 0),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
`

var migration002Tasks = `
CREATE TABLE IF NOT EXISTS tasks (
    id BIGSERIAL PRIMARY KEY,
    taskname VARCHAR(255) NOT NULL,
    taskicon VARCHAR(100) NOT NULL DEFAULT '',
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS completed_tasks (
    completed_task_id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    created_date DATE NOT NULL,
    task1_id BIGINT NOT NULL REFERENCES tasks(id),
    task2_id BIGINT NOT NULL REFERENCES tasks(id),
    task3_id BIGINT NOT NULL REFERENCES tasks(id),
    task4_id BIGINT NOT NULL REFERENCES tasks(id),
    task5_id BIGINT NOT NULL REFERENCES tasks(id),
    task1_completed BOOLEAN NOT NULL DEFAULT FALSE,
    task2_completed BOOLEAN NOT NULL DEFAULT FALSE,
    task3_completed BOOLEAN NOT NULL DEFAULT FALSE,
    task4_completed BOOLEAN NOT NULL DEFAULT FALSE,
    task5_completed BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, created_date)
);
CREATE INDEX IF NOT EXISTS idx_completed_tasks_created_date ON completed_tasks(created_date);
`

var migration003Badges = `
CREATE TABLE IF NOT EXISTS badge_types (
    id INTEGER PRIMARY KEY,
    name VARCHAR(100) NOT NULL
);
CREATE TABLE IF NOT EXISTS badges (
    id BIGSERIAL PRIMARY KEY,
    badge_type_id INTEGER NOT NULL REFERENCES badge_types(id),
    name VARCHAR(255) NOT NULL,
    level INTEGER NOT NULL,
    requirement INTEGER NOT NULL CHECK (requirement > 0),
    points BIGINT NOT NULL DEFAULT 0,
    UNIQUE (badge_type_id, level)
);
CREATE TABLE IF NOT EXISTS user_badges (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    badge_id BIGINT NOT NULL REFERENCES badges(id),
    progress INTEGER NOT NULL DEFAULT 0,
    is_achieved BOOLEAN NOT NULL DEFAULT FALSE,
    achieved_at TIMESTAMPTZ,
    claimed_at TIMESTAMPTZ,
    UNIQUE (user_id, badge_id)
);
`

var migration004Points = `
CREATE TABLE IF NOT EXISTS point_transactions (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    amount BIGINT NOT NULL,
    transaction_type VARCHAR(50) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_point_transactions_user ON point_transactions(user_id, created_at DESC);
`

var migration005Market = `
CREATE TABLE IF NOT EXISTS shop_items (
    id BIGSERIAL PRIMARY KEY,
    name VARCHAR(255) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    price BIGINT NOT NULL CHECK (price > 0),
    image_url TEXT NOT NULL DEFAULT '',
    draw_date TIMESTAMPTZ,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE TABLE IF NOT EXISTS user_purchases (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    item_id BIGINT NOT NULL REFERENCES shop_items(id),
    purchase_date TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    UNIQUE (user_id, item_id)
);
`

var migration006Notes = `
CREATE TABLE IF NOT EXISTS notes (
    id UUID PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_notes_user ON notes(user_id, created_at DESC);
`

var migration007Admin = `
CREATE TABLE IF NOT EXISTS admin_sessions (
    id BIGSERIAL PRIMARY KEY,
    session_token VARCHAR(255) UNIQUE NOT NULL,
    client_addr VARCHAR(255) NOT NULL DEFAULT '',
    authenticated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    expires_at TIMESTAMPTZ NOT NULL,
    last_activity TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    is_active BOOLEAN NOT NULL DEFAULT TRUE
);
CREATE TABLE IF NOT EXISTS admin_login_attempts (
    id BIGSERIAL PRIMARY KEY,
    client_addr VARCHAR(255) NOT NULL,
    attempt_time TIMESTAMPTZ NOT NULL DEFAULT NOW(),
    success BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_admin_login_attempts_addr ON admin_login_attempts(client_addr, attempt_time);
`

// Стартовые данные: типы значков, их уровни и базовый каталог заданий.
var migration008Seed = `
INSERT INTO badge_types (id, name) VALUES
    (1, 'streak'),
    (2, 'tasks'),
    (3, 'login_days')
ON CONFLICT (id) DO NOTHING;

INSERT INTO badges (badge_type_id, name, level, requirement, points) VALUES
    (1, 'Seri Başlangıcı', 1, 3, 10),
    (1, 'Haftalık Seri', 2, 7, 25),
    (1, 'Aylık Seri', 3, 30, 100),
    (2, 'İlk Adımlar', 1, 10, 10),
    (2, 'Görev Avcısı', 2, 50, 25),
    (2, 'Görev Ustası', 3, 250, 100),
    (3, 'Yeni Gelen', 1, 3, 5),
    (3, 'Düzenli Ziyaretçi', 2, 14, 20),
    (3, 'Sadık Kullanıcı', 3, 60, 75)
ON CONFLICT (badge_type_id, level) DO NOTHING;

INSERT INTO tasks (taskname, taskicon)
SELECT v.name, v.icon
FROM (VALUES
    ('10 dakika yürüyüş yap', 'walk'),
    ('2 litre su iç', 'water'),
    ('20 sayfa kitap oku', 'book'),
    ('5 dakika meditasyon yap', 'leaf'),
    ('Bugün için 3 hedef yaz', 'list'),
    ('Bir arkadaşına mesaj at', 'chat'),
    ('Ekransız 30 dakika geçir', 'phone-off'),
    ('10 dakika esneme hareketi yap', 'fitness')
) AS v(name, icon)
WHERE NOT EXISTS (SELECT 1 FROM tasks);
`

var migration009EducationContact = `
CREATE TABLE IF NOT EXISTS education_content (
    id BIGSERIAL PRIMARY KEY,
    title VARCHAR(200) NOT NULL,
    description TEXT NOT NULL DEFAULT '',
    content_url TEXT NOT NULL,
    image_url TEXT NOT NULL DEFAULT '',
    duration VARCHAR(50) NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_education_content_created ON education_content(created_at DESC);

CREATE TABLE IF NOT EXISTS contact (
    id BIGSERIAL PRIMARY KEY,
    user_id UUID NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
    subject VARCHAR(200) NOT NULL,
    message TEXT NOT NULL,
    type VARCHAR(20) NOT NULL DEFAULT 'feedback'
        CHECK (type IN ('feedback', 'suggestion', 'complaint')),
    created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);
CREATE INDEX IF NOT EXISTS idx_contact_created ON contact(created_at DESC);
`
